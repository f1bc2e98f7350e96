package beams

import (
	"slices"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/geom"
)

// interval is a closed 1D range along a beam's cut axis.
type interval struct {
	lo, hi float64
}

func (iv interval) length() float64 { return iv.hi - iv.lo }

// CutVertical cuts the post at x around every opening whose horizontal span
// crosses the post band. Segments are returned bottom to top.
func CutVertical(x float64, wall building.WallSpan, openings []geom.Bounds, p Policy) []BeamSegment {
	half := p.BeamWidth / 2
	var holes []interval
	for _, o := range openings {
		if o.OverlapsX(x-half, x+half, p.OverlapBuffer) {
			holes = append(holes, interval{o.Bottom, o.Top})
		}
	}

	span := interval{-wall.Height / 2, wall.Height / 2}
	pieces, emergency := cutSpan(span, holes, p.StructuralGap, p.MinSegmentHeight, emergencySize(span.length(), p))

	out := make([]BeamSegment, len(pieces))
	for i, iv := range pieces {
		out[i] = BeamSegment{
			X:         x,
			BottomY:   iv.lo,
			TopY:      iv.hi,
			Width:     p.BeamWidth,
			Emergency: emergency,
		}
	}
	return out
}

// CutHorizontal cuts the girt centered at y around every opening whose
// vertical span crosses the girt band. The girt runs between the horizontal
// margins and segments are returned left to right.
func CutHorizontal(y float64, wall building.WallSpan, openings []geom.Bounds, p Policy) []BeamSegment {
	hp := p.Horizontal
	half := hp.BeamHeight / 2
	var holes []interval
	for _, o := range openings {
		if o.OverlapsY(y-half, y+half, p.OverlapBuffer) {
			holes = append(holes, interval{o.Left, o.Right})
		}
	}

	span := interval{-wall.Width/2 + hp.Margin, wall.Width/2 - hp.Margin}
	if span.length() <= 0 {
		return nil
	}
	pieces, emergency := cutSpan(span, holes, p.StructuralGap, hp.MinSegmentWidth, emergencySize(span.length(), p))

	out := make([]BeamSegment, len(pieces))
	for i, iv := range pieces {
		out[i] = BeamSegment{
			X:         (iv.lo + iv.hi) / 2,
			BottomY:   y - half,
			TopY:      y + half,
			Width:     iv.length(),
			Emergency: emergency,
		}
	}
	return out
}

// cutSpan subtracts holes (each widened by gap) from span and keeps pieces
// strictly longer than minLen. Pieces never leave span. When nothing
// survives, it falls back to emergency pieces of the given size and reports
// true.
func cutSpan(span interval, holes []interval, gap, minLen, size float64) ([]interval, bool) {
	// Openings past the wall edges do not interrupt the beam.
	holes = slices.DeleteFunc(holes, func(h interval) bool {
		return h.hi+gap <= span.lo || h.lo-gap >= span.hi
	})
	slices.SortStableFunc(holes, func(a, b interval) int {
		switch {
		case a.lo < b.lo:
			return -1
		case a.lo > b.lo:
			return 1
		}
		return 0
	})

	var pieces []interval
	cur := span.lo
	for _, h := range holes {
		if cur >= span.hi {
			break
		}
		if cut := min(h.lo-gap, span.hi); cut-cur > minLen {
			pieces = append(pieces, interval{cur, cut})
		}
		cur = max(cur, h.hi+gap)
	}
	if span.hi-cur > minLen {
		pieces = append(pieces, interval{cur, span.hi})
	}

	if len(pieces) > 0 {
		return pieces, false
	}
	return emergencyPieces(span, holes, gap, size), true
}

// emergencyPieces anchors up to two short pieces at the span ends. Each is
// placed only if it fits before the nearest (gap-widened) hole. holes must be
// sorted by lo.
func emergencyPieces(span interval, holes []interval, gap, size float64) []interval {
	if size <= 0 {
		return nil
	}

	lowLimit, highLimit := span.hi, span.lo
	for _, h := range holes {
		lowLimit = min(lowLimit, h.lo-gap)
		highLimit = max(highLimit, h.hi+gap)
	}

	var out []interval
	if lowLimit-span.lo >= size {
		out = append(out, interval{span.lo, span.lo + size})
	}
	if span.hi-highLimit >= size {
		top := interval{span.hi - size, span.hi}
		if len(out) == 0 || top.lo >= out[0].hi {
			out = append(out, top)
		}
	}
	return out
}

// emergencySize returns min(EmergencyMaxSize, EmergencyRatio × spanLength).
func emergencySize(spanLength float64, p Policy) float64 {
	return min(p.EmergencyMaxSize, p.EmergencyRatio*spanLength)
}
