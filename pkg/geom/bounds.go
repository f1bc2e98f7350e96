package geom

import "math"

// Bounds is an axis-aligned rectangle on a wall's local plane.
type Bounds struct {
	Left   float64 `json:"left" bson:"left"`
	Right  float64 `json:"right" bson:"right"`
	Bottom float64 `json:"bottom" bson:"bottom"`
	Top    float64 `json:"top" bson:"top"`
}

// Width returns the horizontal span of the bounds.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the bounds.
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// CenterX returns the horizontal center point of the bounds.
func (b Bounds) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center point of the bounds.
func (b Bounds) CenterY() float64 { return (b.Bottom + b.Top) / 2 }

// Area returns Width × Height, or zero for degenerate bounds.
func (b Bounds) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Expand grows the bounds by dx on both sides and by up on the top edge.
// The bottom edge stays put: zones never extend below the floor line.
func (b Bounds) Expand(dx, up float64) Bounds {
	return Bounds{
		Left:   b.Left - dx,
		Right:  b.Right + dx,
		Bottom: b.Bottom,
		Top:    b.Top + up,
	}
}

// OverlapsX reports whether [lo, hi] intersects the horizontal span widened by buffer.
func (b Bounds) OverlapsX(lo, hi, buffer float64) bool {
	return b.Left-buffer < hi && b.Right+buffer > lo
}

// OverlapsY reports whether [lo, hi] intersects the vertical span widened by buffer.
func (b Bounds) OverlapsY(lo, hi, buffer float64) bool {
	return b.Bottom-buffer < hi && b.Top+buffer > lo
}

// Intersects reports whether two bounds share a region of positive area.
func (b Bounds) Intersects(o Bounds) bool {
	return b.Left < o.Right && o.Left < b.Right && b.Bottom < o.Top && o.Bottom < b.Top
}

// Finite reports whether every edge is a finite number.
func (b Bounds) Finite() bool {
	for _, v := range [...]float64{b.Left, b.Right, b.Bottom, b.Top} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Area is a zone footprint on a wall plus its forward projection (Front)
// from the wall surface into the building interior.
type Area struct {
	Bounds
	Front float64 `json:"front" bson:"front"`
}

// AreaOf wraps bounds into an Area with the given forward projection.
func AreaOf(b Bounds, front float64) Area {
	return Area{Bounds: b, Front: front}
}

// Extend returns a copy pushed forward by depth and widened by dx on each side.
func (a Area) Extend(dx, depth float64) Area {
	return Area{
		Bounds: Bounds{
			Left:   a.Left - dx,
			Right:  a.Right + dx,
			Bottom: a.Bottom,
			Top:    a.Top,
		},
		Front: a.Front + depth,
	}
}

// Point is a position in building coordinates. X runs across the width,
// Y across the length and Z upward from the wall-local vertical origin.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// Size is the extent of a 3D element.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Depth  float64 `json:"depth" bson:"depth"`
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
