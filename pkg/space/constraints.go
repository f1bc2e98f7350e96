package space

import (
	"fmt"

	"github.com/matzehuels/barnframe/pkg/geom"
)

// GenerateConstraints flattens detected openings and clearance zones into
// layout constraints:
//
//   - one clearance constraint per opening, critical and not overridable
//     when the opening requires emergency access, important otherwise
//   - one critical access constraint per emergency egress zone
//   - one critical structural constraint per opening that affects wall
//     integrity, overridable unless engineering is required
func GenerateConstraints(detected []DetectedOpening, zones []ClearanceZone) []LayoutConstraint {
	var out []LayoutConstraint
	for _, d := range detected {
		severity := SeverityImportant
		if d.Access.EmergencyAccess {
			severity = SeverityCritical
		}
		c := LayoutConstraint{
			ID:           "clearance-" + d.Ref,
			Kind:         ConstraintClearance,
			OpeningID:    d.Ref,
			Description:  fmt.Sprintf("%s needs its functional zone kept clear", d.Label()),
			AffectedArea: d.FunctionalZone.Area,
			Severity:     severity,
			CanOverride:  !d.Access.EmergencyAccess,
		}
		if c.CanOverride {
			c.OverrideRequirements = []string{"owner sign-off on reduced clearance"}
		}
		out = append(out, c)
	}

	for _, z := range zones {
		if z.Kind != ClearanceEmergencyEgress {
			continue
		}
		out = append(out, LayoutConstraint{
			ID:           "access-" + z.ID,
			Kind:         ConstraintAccess,
			OpeningID:    z.OpeningID,
			Description:  fmt.Sprintf("emergency egress from %s must remain clear", z.OpeningID),
			AffectedArea: z.Area,
			Severity:     SeverityCritical,
		})
	}

	for _, d := range detected {
		if !d.Impact.AffectsWallIntegrity {
			continue
		}
		c := LayoutConstraint{
			ID:        "structural-" + d.Ref,
			Kind:      ConstraintStructural,
			OpeningID: d.Ref,
			Description: fmt.Sprintf("%s affects wall integrity (%.0f%% of the %s wall)",
				d.Label(), d.Impact.Ratio*100, d.Wall),
			AffectedArea: geom.AreaOf(d.Bounds, 0),
			Severity:     SeverityCritical,
			CanOverride:  !d.Impact.EngineeringRequired,
		}
		if c.CanOverride {
			c.OverrideRequirements = []string{"reinforcement plan for the host wall"}
		}
		out = append(out, c)
	}
	return out
}
