package beams

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/geom"
)

// WallLayout holds both framing passes for a single wall.
type WallLayout struct {
	Wall       building.Wall     `json:"wall" bson:"wall"`
	Span       building.WallSpan `json:"span" bson:"span"`
	Vertical   Pass              `json:"vertical" bson:"vertical"`
	Horizontal Pass              `json:"horizontal" bson:"horizontal"`
}

// Segments returns vertical then horizontal segments.
func (l WallLayout) Segments() []BeamSegment {
	return append(l.Vertical.Segments(), l.Horizontal.Segments()...)
}

// Warnings collects the coverage warnings of both passes.
func (l WallLayout) Warnings() []string {
	var out []string
	for _, p := range []Pass{l.Vertical, l.Horizontal} {
		if p.Warning != "" {
			out = append(out, p.Warning)
		}
	}
	return out
}

// VerticalPositions returns evenly spaced post X positions for a wall.
//
// The post count is max(MinBeams, ceil(available/MaxSpacing)+1) where
// available is the span minus both margins, reduced while the resulting
// spacing is below MinSpacing and more than MinBeams posts remain. A wall
// too narrow for its margins gets a single centered post.
func VerticalPositions(wall building.WallSpan, p Policy) []float64 {
	if !usable(wall.Width) {
		return nil
	}
	available := wall.Width - 2*p.Margin
	if available <= 0 {
		return []float64{0}
	}

	maxSpacing := p.MaxSpacing
	if maxSpacing <= 0 {
		maxSpacing = available
	}
	n := max(p.MinBeams, int(math.Ceil(available/maxSpacing))+1)
	for n > p.MinBeams && n > 1 && available/float64(n-1) < p.MinSpacing {
		n--
	}
	if n <= 1 {
		return []float64{0}
	}

	spacing := available / float64(n-1)
	start := -wall.Width/2 + p.Margin
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*spacing
	}
	return out
}

// HorizontalPositions returns girt center Y positions, bottom to top.
func HorizontalPositions(wall building.WallSpan, p Policy) []float64 {
	if !usable(wall.Height) {
		return nil
	}
	ratios := slices.Clone(p.Horizontal.HeightRatios)
	slices.Sort(ratios)

	bottom := -wall.Height / 2
	out := make([]float64, 0, len(ratios))
	for _, r := range ratios {
		out = append(out, bottom+r*wall.Height)
	}
	return out
}

// PlanVertical places and cuts every post on a wall.
func PlanVertical(wall building.WallSpan, openings []geom.Bounds, opts ...Option) Pass {
	return planVertical(newConfig(opts), "", wall, openings)
}

// PlanHorizontal places and cuts every girt on a wall.
func PlanHorizontal(wall building.WallSpan, openings []geom.Bounds, opts ...Option) Pass {
	return planHorizontal(newConfig(opts), "", wall, openings)
}

// PlanWall frames a single wall of the building.
func PlanWall(d building.Dimensions, w building.Wall, openings []building.Opening, opts ...Option) WallLayout {
	c := newConfig(opts)
	span := building.SpanOf(d, w)
	bounds := building.BoundsOn(d, openings, w)

	return WallLayout{
		Wall:       w,
		Span:       span,
		Vertical:   planVertical(c, w, span, bounds),
		Horizontal: planHorizontal(c, w, span, bounds),
	}
}

// PlanBuilding frames all four walls in canonical wall order.
func PlanBuilding(d building.Dimensions, openings []building.Opening, opts ...Option) []WallLayout {
	out := make([]WallLayout, len(building.Walls))
	for i, w := range building.Walls {
		out[i] = PlanWall(d, w, openings, opts...)
	}
	return out
}

func planVertical(c config, w building.Wall, wall building.WallSpan, openings []geom.Bounds) Pass {
	pass := Pass{Orientation: Vertical, Threshold: c.policy.CoverageWarning}
	if !usable(wall.Height) {
		return pass
	}

	var total float64
	for _, x := range VerticalPositions(wall, c.policy) {
		segs := CutVertical(x, wall, openings, c.policy)
		for _, s := range segs {
			total += s.Height()
		}
		pass.Beams = append(pass.Beams, Beam{Position: x, Segments: segs})
	}

	pass.Coverage = coverage(total, len(pass.Beams), wall.Height)
	finishPass(c, w, &pass)
	return pass
}

func planHorizontal(c config, w building.Wall, wall building.WallSpan, openings []geom.Bounds) Pass {
	hp := c.policy.Horizontal
	pass := Pass{Orientation: Horizontal, Threshold: hp.CoverageWarning}
	available := wall.Width - 2*hp.Margin
	if !usable(wall.Width) || !usable(available) {
		return pass
	}

	var total float64
	for _, y := range HorizontalPositions(wall, c.policy) {
		segs := CutHorizontal(y, wall, openings, c.policy)
		for _, s := range segs {
			total += s.Width
		}
		pass.Beams = append(pass.Beams, Beam{Position: y, Segments: segs})
	}

	pass.Coverage = coverage(total, len(pass.Beams), available)
	finishPass(c, w, &pass)
	return pass
}

// finishPass records and logs a low-coverage warning.
func finishPass(c config, w building.Wall, pass *Pass) {
	if emergency := pass.EmergencyBeams(); emergency > 0 {
		c.logger.Debug("emergency segments inserted",
			"wall", w, "pass", pass.Orientation, "beams", emergency)
	}
	if len(pass.Beams) == 0 || pass.Coverage >= pass.Threshold {
		return
	}
	pass.Warning = fmt.Sprintf("%s framing coverage %.0f%% is below %.0f%%",
		pass.Orientation, pass.Coverage*100, pass.Threshold*100)
	if w != "" {
		pass.Warning = fmt.Sprintf("%s wall: %s", w, pass.Warning)
	}
	c.logger.Warn("low structural coverage",
		"wall", w,
		"pass", pass.Orientation,
		"coverage", fmt.Sprintf("%.3f", pass.Coverage),
		"threshold", pass.Threshold)
}

func coverage(total float64, beams int, span float64) float64 {
	if beams == 0 || span <= 0 {
		return 0
	}
	return geom.Clamp01(total / (float64(beams) * span))
}

// usable reports whether v is a finite positive length.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
