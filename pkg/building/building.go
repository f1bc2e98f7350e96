package building

import (
	"fmt"

	"github.com/matzehuels/barnframe/pkg/errors"
	"github.com/matzehuels/barnframe/pkg/geom"
)

// Dimensions are the overall building measurements in feet (RoofPitch in degrees).
type Dimensions struct {
	Width     float64 `json:"width" toml:"width" yaml:"width" bson:"width"`
	Length    float64 `json:"length" toml:"length" yaml:"length" bson:"length"`
	Height    float64 `json:"height" toml:"height" yaml:"height" bson:"height"`
	RoofPitch float64 `json:"roof_pitch,omitempty" toml:"roof_pitch" yaml:"roof_pitch,omitempty" bson:"roof_pitch,omitempty"`
}

// Validate checks that width, length and height are positive and finite.
// RoofPitch may be zero (flat roof) but not negative.
func (d Dimensions) Validate() error {
	code := errors.ErrCodeInvalidDimensions
	return errors.Join(
		errors.ValidatePositive(code, "width", d.Width),
		errors.ValidatePositive(code, "length", d.Length),
		errors.ValidatePositive(code, "height", d.Height),
		errors.ValidateNonNegative(code, "roof_pitch", d.RoofPitch),
	)
}

// Footprint returns the smaller of width and length.
func (d Dimensions) Footprint() float64 {
	return min(d.Width, d.Length)
}

// Wall identifies one of the four exterior walls.
type Wall string

// Wall positions. Front and back walls span the building width; left and
// right walls span its length.
const (
	WallFront Wall = "front"
	WallBack  Wall = "back"
	WallLeft  Wall = "left"
	WallRight Wall = "right"
)

// Walls lists every wall in canonical order. Results keyed by wall are
// always emitted in this order.
var Walls = []Wall{WallFront, WallBack, WallLeft, WallRight}

// Valid reports whether w is one of the four known walls.
func (w Wall) Valid() bool {
	switch w {
	case WallFront, WallBack, WallLeft, WallRight:
		return true
	}
	return false
}

// Span returns the wall's horizontal length for the given building.
func (w Wall) Span(d Dimensions) float64 {
	switch w {
	case WallLeft, WallRight:
		return d.Length
	default:
		return d.Width
	}
}

// WallSpan is the rectangular extent of a single wall.
type WallSpan struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SpanOf returns the extent of wall w on a building with dimensions d.
func SpanOf(d Dimensions, w Wall) WallSpan {
	return WallSpan{Width: w.Span(d), Height: d.Height}
}

// Bounds returns the wall's own rectangle in its center-origin plane.
func (s WallSpan) Bounds() geom.Bounds {
	return geom.Bounds{
		Left:   -s.Width / 2,
		Right:  s.Width / 2,
		Bottom: -s.Height / 2,
		Top:    s.Height / 2,
	}
}

// Area returns Width × Height.
func (s WallSpan) Area() float64 { return s.Width * s.Height }

// Kind classifies an opening.
type Kind string

// Opening kinds.
const (
	KindDoor       Kind = "door"
	KindWalkDoor   Kind = "walkDoor"
	KindRollupDoor Kind = "rollupDoor"
	KindWindow     Kind = "window"
	KindOther      Kind = "other"
)

// Kinds lists every opening kind.
var Kinds = []Kind{KindDoor, KindWalkDoor, KindRollupDoor, KindWindow, KindOther}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDoor, KindWalkDoor, KindRollupDoor, KindWindow, KindOther:
		return true
	}
	return false
}

// IsEntry reports whether the opening is a door people or vehicles pass through.
func (k Kind) IsEntry() bool {
	switch k {
	case KindDoor, KindWalkDoor, KindRollupDoor:
		return true
	}
	return false
}

// Align is the horizontal anchor an opening's XOffset is measured from.
type Align string

// Horizontal alignments.
const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Valid reports whether a is a known alignment.
func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignRight, AlignCenter:
		return true
	}
	return false
}

// Opening is a door, window or similar feature placed on a wall.
//
// XOffset is measured from the anchor chosen by Align; YOffset from the wall
// bottom. Width and Height are the rough opening size.
type Opening struct {
	ID      string  `json:"id" toml:"id" yaml:"id" bson:"id"`
	Kind    Kind    `json:"kind" toml:"kind" yaml:"kind" bson:"kind"`
	Wall    Wall    `json:"wall" toml:"wall" yaml:"wall" bson:"wall"`
	Align   Align   `json:"align" toml:"align" yaml:"align" bson:"align"`
	XOffset float64 `json:"x_offset" toml:"x_offset" yaml:"x_offset" bson:"x_offset"`
	YOffset float64 `json:"y_offset" toml:"y_offset" yaml:"y_offset" bson:"y_offset"`
	Width   float64 `json:"width" toml:"width" yaml:"width" bson:"width"`
	Height  float64 `json:"height" toml:"height" yaml:"height" bson:"height"`
}

// Area returns the opening's rough area.
func (o Opening) Area() float64 { return o.Width * o.Height }

// Label returns a short human-readable name for messages.
func (o Opening) Label() string {
	if o.ID == "" {
		return fmt.Sprintf("%s on %s wall", o.Kind, o.Wall)
	}
	return fmt.Sprintf("%s %s", o.Kind, o.ID)
}

// Validate checks that the opening has a known kind, wall and alignment and
// a plausible size. It does not check that the opening fits its wall.
func (o Opening) Validate() error {
	code := errors.ErrCodeInvalidOpening
	var errs []error
	if !o.Kind.Valid() {
		errs = append(errs, errors.New(code, "opening %q: unknown kind %q", o.ID, o.Kind))
	}
	if !o.Wall.Valid() {
		errs = append(errs, errors.New(code, "opening %q: unknown wall %q", o.ID, o.Wall))
	}
	if !o.Align.Valid() {
		errs = append(errs, errors.New(code, "opening %q: unknown alignment %q", o.ID, o.Align))
	}
	errs = append(errs,
		errors.ValidatePositive(code, fmt.Sprintf("opening %q width", o.ID), o.Width),
		errors.ValidatePositive(code, fmt.Sprintf("opening %q height", o.ID), o.Height),
		errors.ValidateFinite(code, fmt.Sprintf("opening %q x_offset", o.ID), o.XOffset),
		errors.ValidateNonNegative(code, fmt.Sprintf("opening %q y_offset", o.ID), o.YOffset),
	)
	return errors.Join(errs...)
}

// OnWall returns the openings hosted by wall w, preserving input order.
func OnWall(openings []Opening, w Wall) []Opening {
	var out []Opening
	for _, o := range openings {
		if o.Wall == w {
			out = append(out, o)
		}
	}
	return out
}
