package space

import (
	"time"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/geom"
)

// =============================================================================
// Enumerations
// =============================================================================

// ZoneKind classifies an opening's functional zone.
type ZoneKind string

// Functional zone kinds.
const (
	ZoneEntry  ZoneKind = "entry"
	ZoneWindow ZoneKind = "window"
	ZoneAccess ZoneKind = "access"
)

// ClearanceKind classifies a protected clearance zone.
type ClearanceKind string

// Clearance zone kinds.
const (
	ClearanceDoorSwing       ClearanceKind = "door_swing"
	ClearanceWindowOperation ClearanceKind = "window_operation"
	ClearanceEmergencyEgress ClearanceKind = "emergency_egress"
)

// PathType ranks an access path.
type PathType string

// Access path types.
const (
	PathEmergency PathType = "emergency"
	PathPrimary   PathType = "primary"
	PathSecondary PathType = "secondary"
)

// ElementKind classifies a structural element.
type ElementKind string

// Structural element kinds.
const (
	ElementHeader ElementKind = "header"
	ElementColumn ElementKind = "column"
)

// ConstraintKind classifies a layout constraint.
type ConstraintKind string

// Layout constraint kinds.
const (
	ConstraintClearance  ConstraintKind = "clearance"
	ConstraintAccess     ConstraintKind = "access"
	ConstraintStructural ConstraintKind = "structural"
	ConstraintCode       ConstraintKind = "code"
	ConstraintFunctional ConstraintKind = "functional"
)

// Severity ranks a layout constraint.
type Severity string

// Constraint severities.
const (
	SeverityCritical  Severity = "critical"
	SeverityImportant Severity = "important"
	SeverityAdvisory  Severity = "advisory"
)

// =============================================================================
// Detection results
// =============================================================================

// ClearanceRequirements are the distances, in feet, an opening needs kept clear.
type ClearanceRequirements struct {
	Front     float64 `json:"front" bson:"front"`
	Sides     float64 `json:"sides" bson:"sides"`
	Above     float64 `json:"above" bson:"above"`
	Swing     float64 `json:"swing" bson:"swing"`
	Emergency float64 `json:"emergency" bson:"emergency"`
}

// FunctionalZone is the space an opening needs to be used at all.
type FunctionalZone struct {
	Kind ZoneKind  `json:"kind" bson:"kind"`
	Area geom.Area `json:"area" bson:"area"`
}

// AccessRequirements describe how people pass through an opening.
type AccessRequirements struct {
	MinimumWidth    float64 `json:"minimum_width" bson:"minimum_width"`
	MinimumHeight   float64 `json:"minimum_height" bson:"minimum_height"`
	EmergencyAccess bool    `json:"emergency_access" bson:"emergency_access"`
	DailyUse        bool    `json:"daily_use" bson:"daily_use"`
}

// StructuralImpact grades how much of its host wall an opening removes.
type StructuralImpact struct {
	Ratio                 float64  `json:"ratio" bson:"ratio"`
	LoadBearing           bool     `json:"load_bearing" bson:"load_bearing"`
	AffectsWallIntegrity  bool     `json:"affects_wall_integrity" bson:"affects_wall_integrity"`
	RequiresReinforcement bool     `json:"requires_reinforcement" bson:"requires_reinforcement"`
	EngineeringRequired   bool     `json:"engineering_required" bson:"engineering_required"`
	ModificationLimits    []string `json:"modification_limits,omitempty" bson:"modification_limits,omitempty"`
}

// DetectedOpening is an opening together with everything derived from it.
type DetectedOpening struct {
	building.Opening `bson:",inline"`

	// Ref is the opening ID, or a positional ID when the opening has none.
	Ref              string                `json:"ref" bson:"ref"`
	Bounds           geom.Bounds           `json:"bounds" bson:"bounds"`
	Clearance        ClearanceRequirements `json:"clearance" bson:"clearance"`
	FunctionalZone   FunctionalZone        `json:"functional_zone" bson:"functional_zone"`
	Access           AccessRequirements    `json:"access" bson:"access"`
	Impact           StructuralImpact      `json:"impact" bson:"impact"`
	IsProtected      bool                  `json:"is_protected" bson:"is_protected"`
	ProtectionReason string                `json:"protection_reason" bson:"protection_reason"`
}

// =============================================================================
// Derived space
// =============================================================================

// ClearanceZone is a protected area that must stay free of obstruction.
type ClearanceZone struct {
	ID           string        `json:"id" bson:"id"`
	OpeningID    string        `json:"opening_id" bson:"opening_id"`
	Kind         ClearanceKind `json:"kind" bson:"kind"`
	Area         geom.Area     `json:"area" bson:"area"`
	IsProtected  bool          `json:"is_protected" bson:"is_protected"`
	Restrictions []string      `json:"restrictions" bson:"restrictions"`
	Purpose      string        `json:"purpose" bson:"purpose"`
}

// AccessPath connects two entry openings.
type AccessPath struct {
	ID           string   `json:"id" bson:"id"`
	FromOpening  string   `json:"from_opening" bson:"from_opening"`
	ToOpening    string   `json:"to_opening" bson:"to_opening"`
	PathType     PathType `json:"path_type" bson:"path_type"`
	MinimumWidth float64  `json:"minimum_width" bson:"minimum_width"`
	// CurrentWidth is min(width, length) less the path allowance, not the
	// result of routing through the floor plan.
	CurrentWidth float64  `json:"current_width" bson:"current_width"`
	IsBlocked    bool     `json:"is_blocked" bson:"is_blocked"`
	Restrictions []string `json:"restrictions" bson:"restrictions"`
}

// VentilationArea is the airflow zone in front of a window.
type VentilationArea struct {
	ID          string    `json:"id" bson:"id"`
	WindowID    string    `json:"window_id" bson:"window_id"`
	AirflowZone geom.Area `json:"airflow_zone" bson:"airflow_zone"`
	// VentilationCapacity is width × height × the ventilation factor. It is
	// a ranking proxy, not a CFM rating.
	VentilationCapacity float64  `json:"ventilation_capacity" bson:"ventilation_capacity"`
	IsObstructed        bool     `json:"is_obstructed" bson:"is_obstructed"`
	Restrictions        []string `json:"restrictions" bson:"restrictions"`
}

// StructuralElement is a header or corner column.
type StructuralElement struct {
	ID   string      `json:"id" bson:"id"`
	Kind ElementKind `json:"kind" bson:"kind"`
	// Wall is set for headers only.
	Wall          building.Wall `json:"wall,omitempty" bson:"wall,omitempty"`
	Position      geom.Point    `json:"position" bson:"position"`
	Size          geom.Size     `json:"size" bson:"size"`
	IsLoadBearing bool          `json:"is_load_bearing" bson:"is_load_bearing"`
	CanModify     bool          `json:"can_modify" bson:"can_modify"`
	Restrictions  []string      `json:"restrictions" bson:"restrictions"`
}

// LayoutConstraint is one rule a dimension change has to respect.
type LayoutConstraint struct {
	ID                   string         `json:"id" bson:"id"`
	Kind                 ConstraintKind `json:"kind" bson:"kind"`
	// OpeningID is the Ref of the opening the constraint protects.
	OpeningID            string         `json:"opening_id,omitempty" bson:"opening_id,omitempty"`
	Description          string         `json:"description" bson:"description"`
	AffectedArea         geom.Area      `json:"affected_area" bson:"affected_area"`
	Severity             Severity       `json:"severity" bson:"severity"`
	CanOverride          bool           `json:"can_override" bson:"can_override"`
	OverrideRequirements []string       `json:"override_requirements,omitempty" bson:"override_requirements,omitempty"`
}

// Blocking reports whether the constraint can reject a dimension change.
func (c LayoutConstraint) Blocking() bool {
	return c.Severity == SeverityCritical && !c.CanOverride
}

// Snapshot is a complete space analysis of one building state.
type Snapshot struct {
	DetectedOpenings   []DetectedOpening            `json:"detected_openings" bson:"detected_openings"`
	ClearanceZones     []ClearanceZone              `json:"clearance_zones" bson:"clearance_zones"`
	AccessPaths        []AccessPath                 `json:"access_paths" bson:"access_paths"`
	VentilationAreas   []VentilationArea            `json:"ventilation_areas" bson:"ventilation_areas"`
	StructuralElements []StructuralElement          `json:"structural_elements" bson:"structural_elements"`
	LayoutConstraints  []LayoutConstraint           `json:"layout_constraints" bson:"layout_constraints"`
	WallProtection     map[building.Wall]Protection `json:"wall_protection" bson:"wall_protection"`
	ComputedAt         time.Time                    `json:"computed_at" bson:"computed_at"`
}

// Blocking returns the constraints that can reject a dimension change.
func (s Snapshot) Blocking() []LayoutConstraint {
	var out []LayoutConstraint
	for _, c := range s.LayoutConstraints {
		if c.Blocking() {
			out = append(out, c)
		}
	}
	return out
}

// BlockedPaths returns the access paths that are already too narrow.
func (s Snapshot) BlockedPaths() []AccessPath {
	var out []AccessPath
	for _, p := range s.AccessPaths {
		if p.IsBlocked {
			out = append(out, p)
		}
	}
	return out
}
