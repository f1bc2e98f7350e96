// Package space derives the protected space around wall openings and uses
// it to gate changes to the building's dimensions.
//
// # Overview
//
// A space analysis runs in one direction:
//
//	openings + dimensions
//	    → Detect (clearance, functional zone, access, structural impact)
//	    → clearance zones, access paths, ventilation areas, structural elements
//	    → layout constraints
//	    → ValidateModification
//
// [Analyze] runs every stage and returns a [Snapshot]. Snapshots are never
// updated in place; any change to the opening list or the dimensions calls
// for a fresh analysis.
//
// # Coordinates
//
// Bounds are wall-local and center-origin, as produced by
// [building.FeatureBounds]. An [geom.Area] adds Front, the distance a zone
// projects from the wall into the building.
//
// # Policy
//
// Thresholds such as the structural-impact ratios, the path allowance and
// the ventilation factor are collected in [Policy]. [DefaultPolicy] holds
// the stock values.
package space
