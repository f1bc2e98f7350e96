package space

import (
	"fmt"
	"slices"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/geom"
)

// Fixed restriction texts.
var (
	restrictSwing = []string{
		"no fixtures, stalls or storage within the swing area",
		"keep clear for full door travel",
	}
	restrictOperation = []string{
		"no fixtures or storage blocking window operation",
	}
	restrictEgress = []string{
		"no obstructions permitted",
		"must remain clear for emergency exit",
	}
	restrictVentilation = []string{
		"keep airflow zone free of tall storage",
	}
	restrictMember = []string{
		"load-bearing member; do not cut or remove",
	}
)

// MapClearanceZones builds the protected zones around each opening.
//
// Entry openings get a door_swing zone and windows a window_operation zone,
// each the functional zone pushed forward by the swing clearance. Every
// opening that requires emergency access also gets an emergency_egress zone,
// widened on each side and pushed forward by the emergency clearance.
func MapClearanceZones(detected []DetectedOpening, opts ...Option) []ClearanceZone {
	p := newConfig(opts).policy
	var out []ClearanceZone
	for _, d := range detected {
		fz := d.FunctionalZone.Area
		switch {
		case d.Kind.IsEntry():
			out = append(out, ClearanceZone{
				ID:           d.Ref + "-door-swing",
				OpeningID:    d.Ref,
				Kind:         ClearanceDoorSwing,
				Area:         geom.AreaOf(fz.Bounds, fz.Front+d.Clearance.Swing),
				IsProtected:  true,
				Restrictions: slices.Clone(restrictSwing),
				Purpose:      "door operation",
			})
		case d.Kind == building.KindWindow:
			out = append(out, ClearanceZone{
				ID:           d.Ref + "-window-operation",
				OpeningID:    d.Ref,
				Kind:         ClearanceWindowOperation,
				Area:         geom.AreaOf(fz.Bounds, fz.Front+d.Clearance.Swing),
				IsProtected:  true,
				Restrictions: slices.Clone(restrictOperation),
				Purpose:      "window operation",
			})
		}
		if d.Access.EmergencyAccess {
			out = append(out, ClearanceZone{
				ID:           d.Ref + "-egress",
				OpeningID:    d.Ref,
				Kind:         ClearanceEmergencyEgress,
				Area:         fz.Extend(p.EgressLateral, d.Clearance.Emergency),
				IsProtected:  true,
				Restrictions: slices.Clone(restrictEgress),
				Purpose:      "emergency egress",
			})
		}
	}
	return out
}

// BuildAccessPaths connects every pair of entry openings, in input order.
//
// The current width of a path is approximated as min(width, length) less
// the path allowance. It does not route through the floor plan.
func BuildAccessPaths(d building.Dimensions, detected []DetectedOpening, opts ...Option) []AccessPath {
	p := newConfig(opts).policy

	var entries []DetectedOpening
	for _, o := range detected {
		if o.Kind.IsEntry() {
			entries = append(entries, o)
		}
	}

	current := pathWidth(p, d)
	var out []AccessPath
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			minimum := p.PathWidthFactor * max(a.Access.MinimumWidth, b.Access.MinimumWidth)
			path := AccessPath{
				ID:           fmt.Sprintf("path-%s-%s", a.Ref, b.Ref),
				FromOpening:  a.Ref,
				ToOpening:    b.Ref,
				PathType:     pathType(a.Access, b.Access),
				MinimumWidth: minimum,
				CurrentWidth: current,
				IsBlocked:    current < minimum,
				Restrictions: []string{fmt.Sprintf("keep at least %.1f ft clear between %s and %s", minimum, a.Ref, b.Ref)},
			}
			if path.IsBlocked {
				path.Restrictions = append(path.Restrictions,
					fmt.Sprintf("path is %.1f ft short of its minimum width", minimum-current))
			}
			out = append(out, path)
		}
	}
	return out
}

func pathType(a, b AccessRequirements) PathType {
	switch {
	case a.EmergencyAccess && b.EmergencyAccess:
		return PathEmergency
	case a.DailyUse && b.DailyUse:
		return PathPrimary
	default:
		return PathSecondary
	}
}

func pathWidth(p Policy, d building.Dimensions) float64 {
	return d.Footprint() - p.PathAllowance
}

// MapVentilation builds an airflow zone in front of every window.
// Obstruction is not detected; IsObstructed is always false.
func MapVentilation(detected []DetectedOpening, opts ...Option) []VentilationArea {
	p := newConfig(opts).policy
	var out []VentilationArea
	for _, d := range detected {
		if d.Kind != building.KindWindow {
			continue
		}
		fz := d.FunctionalZone.Area
		out = append(out, VentilationArea{
			ID:                  d.Ref + "-ventilation",
			WindowID:            d.Ref,
			AirflowZone:         geom.AreaOf(fz.Bounds, fz.Front+p.AirflowDepth),
			VentilationCapacity: d.Width * d.Height * p.VentilationFactor,
			Restrictions:        slices.Clone(restrictVentilation),
		})
	}
	return out
}

// DetectStructuralElements finds headers over wide openings and the four
// corner columns.
//
// Positions are in building coordinates: X across the width, Y along the
// length, both center-origin, and Z in the wall-local vertical frame.
func DetectStructuralElements(d building.Dimensions, detected []DetectedOpening, opts ...Option) []StructuralElement {
	p := newConfig(opts).policy
	var out []StructuralElement
	for _, o := range detected {
		if o.Width <= p.HeaderMinWidth {
			continue
		}
		x, y := toBuilding(d, o.Wall, o.Bounds.CenterX())
		out = append(out, StructuralElement{
			ID:            o.Ref + "-header",
			Kind:          ElementHeader,
			Wall:          o.Wall,
			Position:      geom.Point{X: x, Y: y, Z: o.Bounds.Top + p.HeaderHeight/2},
			Size:          geom.Size{Width: o.Width + p.HeaderOverhang, Height: p.HeaderHeight, Depth: p.MemberDepth},
			IsLoadBearing: true,
			Restrictions:  slices.Clone(restrictMember),
		})
	}

	corners := []struct {
		name string
		x, y float64
	}{
		{"front-left", -d.Width / 2, -d.Length / 2},
		{"front-right", d.Width / 2, -d.Length / 2},
		{"back-left", -d.Width / 2, d.Length / 2},
		{"back-right", d.Width / 2, d.Length / 2},
	}
	for _, c := range corners {
		out = append(out, StructuralElement{
			ID:            "column-" + c.name,
			Kind:          ElementColumn,
			Position:      geom.Point{X: c.x, Y: c.y},
			Size:          geom.Size{Width: p.MemberDepth, Height: d.Height, Depth: p.MemberDepth},
			IsLoadBearing: true,
			Restrictions:  slices.Clone(restrictMember),
		})
	}
	return out
}

// toBuilding maps a wall-local X onto the building footprint. Front and
// back walls run along X; left and right walls run along Y.
func toBuilding(d building.Dimensions, w building.Wall, x float64) (float64, float64) {
	switch w {
	case building.WallBack:
		return x, d.Length / 2
	case building.WallLeft:
		return -d.Width / 2, x
	case building.WallRight:
		return d.Width / 2, x
	default:
		return x, -d.Length / 2
	}
}
