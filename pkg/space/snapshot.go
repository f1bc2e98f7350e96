package space

import (
	"github.com/matzehuels/barnframe/pkg/building"
)

// Analyze runs the full space analysis for one building state.
//
// Results depend only on the inputs and the policy; ComputedAt comes from
// the configured clock.
func Analyze(d building.Dimensions, openings []building.Opening, opts ...Option) Snapshot {
	c := newConfig(opts)

	detected := Detect(d, openings, opts...)
	zones := MapClearanceZones(detected, opts...)
	s := Snapshot{
		DetectedOpenings:   detected,
		ClearanceZones:     zones,
		AccessPaths:        BuildAccessPaths(d, detected, opts...),
		VentilationAreas:   MapVentilation(detected, opts...),
		StructuralElements: DetectStructuralElements(d, detected, opts...),
		LayoutConstraints:  GenerateConstraints(detected, zones),
		WallProtection:     ComputeProtection(openings, d),
		ComputedAt:         c.clock().UTC(),
	}

	c.logger.Debug("space analysis complete",
		"openings", len(s.DetectedOpenings),
		"zones", len(s.ClearanceZones),
		"paths", len(s.AccessPaths),
		"blocked", len(s.BlockedPaths()),
		"constraints", len(s.LayoutConstraints))
	return s
}
