package beams

import "github.com/matzehuels/barnframe/pkg/geom"

// Orientation tells which pass produced a beam.
type Orientation string

// Beam orientations.
const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// BeamSegment is one physical member piece, described as a rectangle
// centered horizontally on X.
//
// For vertical beams X is the post center, Width the post thickness and
// BottomY/TopY the cut span. For horizontal beams X is the segment center,
// Width the segment length and BottomY/TopY the girt band.
type BeamSegment struct {
	X         float64 `json:"x" bson:"x"`
	BottomY   float64 `json:"bottom_y" bson:"bottom_y"`
	TopY      float64 `json:"top_y" bson:"top_y"`
	Width     float64 `json:"width" bson:"width"`
	Emergency bool    `json:"emergency,omitempty" bson:"emergency,omitempty"`
}

// Height returns the vertical extent of the segment.
func (s BeamSegment) Height() float64 { return s.TopY - s.BottomY }

// Left returns the segment's left edge.
func (s BeamSegment) Left() float64 { return s.X - s.Width/2 }

// Right returns the segment's right edge.
func (s BeamSegment) Right() float64 { return s.X + s.Width/2 }

// Bounds returns the segment rectangle.
func (s BeamSegment) Bounds() geom.Bounds {
	return geom.Bounds{Left: s.Left(), Right: s.Right(), Bottom: s.BottomY, Top: s.TopY}
}

// Length returns the segment's extent along the cut axis of orientation o.
func (s BeamSegment) Length(o Orientation) float64 {
	if o == Horizontal {
		return s.Width
	}
	return s.Height()
}

// Beam is one full-span member and the pieces left after cutting.
type Beam struct {
	// Position is the post X (vertical) or girt center Y (horizontal).
	Position float64       `json:"position" bson:"position"`
	Segments []BeamSegment `json:"segments" bson:"segments"`
}

// Emergency reports whether the beam only carries fallback segments.
func (b Beam) Emergency() bool {
	if len(b.Segments) == 0 {
		return false
	}
	for _, s := range b.Segments {
		if !s.Emergency {
			return false
		}
	}
	return true
}

// Pass is the result of planning one orientation across a wall.
type Pass struct {
	Orientation Orientation `json:"orientation" bson:"orientation"`
	Beams       []Beam      `json:"beams" bson:"beams"`
	// Coverage is realized segment length over beam count × full span, in [0, 1].
	Coverage float64 `json:"coverage" bson:"coverage"`
	// Threshold is the coverage below which Warning is set.
	Threshold float64 `json:"threshold" bson:"threshold"`
	Warning   string  `json:"warning,omitempty" bson:"warning,omitempty"`
}

// Segments flattens every beam's segments in beam order.
func (p Pass) Segments() []BeamSegment {
	var out []BeamSegment
	for _, b := range p.Beams {
		out = append(out, b.Segments...)
	}
	return out
}

// EmergencyBeams counts beams that fell back to emergency segments.
func (p Pass) EmergencyBeams() int {
	n := 0
	for _, b := range p.Beams {
		if b.Emergency() {
			n++
		}
	}
	return n
}
