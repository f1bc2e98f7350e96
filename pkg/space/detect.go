package space

import (
	"fmt"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/geom"
)

// ProtectionReason is attached to every detected opening. Placed openings
// are always protected; nothing unprotects them.
const ProtectionReason = "placed openings keep their clearance, access and structural support"

// Advisories appended to StructuralImpact.ModificationLimits, one per
// crossed threshold.
const (
	LimitLoadBearing   = "opening removes a load-bearing share of the wall"
	LimitIntegrity     = "opening affects wall integrity; do not shrink the wall below the opening"
	LimitReinforcement = "wall requires reinforcement around the opening"
	LimitEngineering   = "structural engineering review required before modifying this wall"
)

// Requirements returns the clearance distances for an opening kind.
//
//	kind            front sides above swing emergency
//	door, walkDoor  3.0   1.5   1.0   3.0   4.0
//	rollupDoor      4.0   2.0   2.0   0     6.0
//	window          1.0   1.0   0.5   2.0   3.0
//	other           2.0   1.0   1.0   2.0   3.0
//
// Unknown kinds are treated as other.
func Requirements(k building.Kind) ClearanceRequirements {
	switch k {
	case building.KindDoor, building.KindWalkDoor:
		return ClearanceRequirements{Front: 3.0, Sides: 1.5, Above: 1.0, Swing: 3.0, Emergency: 4.0}
	case building.KindRollupDoor:
		return ClearanceRequirements{Front: 4.0, Sides: 2.0, Above: 2.0, Swing: 0, Emergency: 6.0}
	case building.KindWindow:
		return ClearanceRequirements{Front: 1.0, Sides: 1.0, Above: 0.5, Swing: 2.0, Emergency: 3.0}
	case building.KindOther:
		return ClearanceRequirements{Front: 2.0, Sides: 1.0, Above: 1.0, Swing: 2.0, Emergency: 3.0}
	default:
		return Requirements(building.KindOther)
	}
}

// accessMargins returns the width and height added to an opening's size
// to get its minimum passage.
func accessMargins(k building.Kind) (width, height float64) {
	switch k {
	case building.KindDoor, building.KindWalkDoor:
		return 2.0, 1.0
	case building.KindRollupDoor:
		return 4.0, 2.0
	case building.KindWindow:
		return 1.0, 0.5
	case building.KindOther:
		return 1.0, 1.0
	default:
		return accessMargins(building.KindOther)
	}
}

func zoneKind(k building.Kind) ZoneKind {
	switch k {
	case building.KindDoor, building.KindWalkDoor, building.KindRollupDoor:
		return ZoneEntry
	case building.KindWindow:
		return ZoneWindow
	default:
		return ZoneAccess
	}
}

func dailyUse(k building.Kind) bool {
	switch k {
	case building.KindDoor, building.KindWalkDoor:
		return true
	default:
		return false
	}
}

// Detect derives requirements for every opening, in input order.
func Detect(d building.Dimensions, openings []building.Opening, opts ...Option) []DetectedOpening {
	c := newConfig(opts)
	out := make([]DetectedOpening, len(openings))
	for i, o := range openings {
		out[i] = detect(c.policy, d, i, o)
	}
	return out
}

// DetectOpening derives requirements for a single opening. The opening's
// position in its list is only used to name it when it has no ID.
func DetectOpening(d building.Dimensions, index int, o building.Opening, opts ...Option) DetectedOpening {
	return detect(newConfig(opts).policy, d, index, o)
}

func detect(p Policy, d building.Dimensions, index int, o building.Opening) DetectedOpening {
	wall := building.SpanOf(d, o.Wall)
	bounds := building.FeatureBounds(o, wall)
	req := Requirements(o.Kind)

	return DetectedOpening{
		Opening:   o,
		Ref:       openingRef(index, o),
		Bounds:    bounds,
		Clearance: req,
		FunctionalZone: FunctionalZone{
			Kind: zoneKind(o.Kind),
			Area: geom.AreaOf(bounds.Expand(req.Sides, req.Above), req.Front),
		},
		Access:           access(p, o),
		Impact:           impact(p, o, wall),
		IsProtected:      true,
		ProtectionReason: ProtectionReason,
	}
}

func openingRef(index int, o building.Opening) string {
	if o.ID != "" {
		return o.ID
	}
	return fmt.Sprintf("opening-%d", index+1)
}

func access(p Policy, o building.Opening) AccessRequirements {
	dw, dh := accessMargins(o.Kind)
	emergency := o.Kind.IsEntry()
	if o.Kind == building.KindWindow {
		emergency = o.Height >= p.EgressMinHeight && o.Width >= p.EgressMinWidth
	}
	return AccessRequirements{
		MinimumWidth:    o.Width + dw,
		MinimumHeight:   o.Height + dh,
		EmergencyAccess: emergency,
		DailyUse:        dailyUse(o.Kind),
	}
}

func impact(p Policy, o building.Opening, wall building.WallSpan) StructuralImpact {
	var ratio float64
	if a := wall.Area(); a > 0 {
		ratio = o.Area() / a
	}
	si := StructuralImpact{
		Ratio:                 ratio,
		LoadBearing:           ratio > p.LoadBearingRatio,
		AffectsWallIntegrity:  ratio > p.IntegrityRatio,
		RequiresReinforcement: ratio > p.ReinforcementRatio,
		EngineeringRequired:   ratio > p.EngineeringRatio,
	}
	for _, l := range []struct {
		set   bool
		limit string
	}{
		{si.LoadBearing, LimitLoadBearing},
		{si.AffectsWallIntegrity, LimitIntegrity},
		{si.RequiresReinforcement, LimitReinforcement},
		{si.EngineeringRequired, LimitEngineering},
	} {
		if l.set {
			si.ModificationLimits = append(si.ModificationLimits, l.limit)
		}
	}
	return si
}
