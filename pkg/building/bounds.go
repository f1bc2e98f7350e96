package building

import "github.com/matzehuels/barnframe/pkg/geom"

// FeatureBounds places an opening on its host wall.
//
//   - left: anchored at the wall's left edge plus XOffset
//   - right: anchored at the wall's right edge minus XOffset
//   - center: centered on wall-center plus XOffset
//
// Bottom is the wall bottom plus YOffset and Top is Bottom plus Height.
// Unknown alignments fall back to center. The result is never clipped to
// the wall; callers decide what an out-of-wall opening means.
func FeatureBounds(o Opening, wall WallSpan) geom.Bounds {
	halfW := wall.Width / 2
	bottom := -wall.Height/2 + o.YOffset

	var left float64
	switch o.Align {
	case AlignLeft:
		left = -halfW + o.XOffset
	case AlignRight:
		left = halfW - o.XOffset - o.Width
	default:
		left = o.XOffset - o.Width/2
	}

	return geom.Bounds{
		Left:   left,
		Right:  left + o.Width,
		Bottom: bottom,
		Top:    bottom + o.Height,
	}
}

// BoundsOn computes FeatureBounds for the openings hosted by wall w.
func BoundsOn(d Dimensions, openings []Opening, w Wall) []geom.Bounds {
	span := SpanOf(d, w)
	var out []geom.Bounds
	for _, o := range openings {
		if o.Wall == w {
			out = append(out, FeatureBounds(o, span))
		}
	}
	return out
}
