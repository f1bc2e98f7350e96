package building

import (
	"math"
	"testing"

	"github.com/matzehuels/barnframe/pkg/errors"
)

func TestDimensionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		dims    Dimensions
		wantErr bool
	}{
		{"valid", Dimensions{Width: 30, Length: 40, Height: 12, RoofPitch: 18}, false},
		{"flat roof", Dimensions{Width: 30, Length: 40, Height: 12}, false},
		{"zero width", Dimensions{Length: 40, Height: 12}, true},
		{"negative length", Dimensions{Width: 30, Length: -1, Height: 12}, true},
		{"NaN height", Dimensions{Width: 30, Length: 40, Height: math.NaN()}, true},
		{"negative pitch", Dimensions{Width: 30, Length: 40, Height: 12, RoofPitch: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dims.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidDimensions) {
				t.Errorf("Validate() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDimensions)
			}
		})
	}
}

func TestOpeningValidate(t *testing.T) {
	valid := Opening{ID: "w1", Kind: KindWindow, Wall: WallFront, Align: AlignCenter, YOffset: 3, Width: 3, Height: 4}

	tests := []struct {
		name    string
		mutate  func(*Opening)
		wantErr bool
	}{
		{"valid", func(*Opening) {}, false},
		{"unknown kind", func(o *Opening) { o.Kind = "skylight" }, true},
		{"unknown wall", func(o *Opening) { o.Wall = "north" }, true},
		{"unknown align", func(o *Opening) { o.Align = "middle" }, true},
		{"zero width", func(o *Opening) { o.Width = 0 }, true},
		{"negative y offset", func(o *Opening) { o.YOffset = -1 }, true},
		{"negative x offset allowed", func(o *Opening) { o.XOffset = -4 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			err := o.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWallSpan(t *testing.T) {
	d := Dimensions{Width: 30, Length: 48, Height: 14}

	for _, w := range []Wall{WallFront, WallBack} {
		if got := w.Span(d); got != 30 {
			t.Errorf("%s.Span() = %v, want 30", w, got)
		}
	}
	for _, w := range []Wall{WallLeft, WallRight} {
		if got := w.Span(d); got != 48 {
			t.Errorf("%s.Span() = %v, want 48", w, got)
		}
	}

	b := SpanOf(d, WallLeft).Bounds()
	if b.Left != -24 || b.Right != 24 || b.Bottom != -7 || b.Top != 7 {
		t.Errorf("SpanOf(left).Bounds() = %+v", b)
	}
}

func TestKindIsEntry(t *testing.T) {
	want := map[Kind]bool{
		KindDoor:       true,
		KindWalkDoor:   true,
		KindRollupDoor: true,
		KindWindow:     false,
		KindOther:      false,
	}
	for _, k := range Kinds {
		if got := k.IsEntry(); got != want[k] {
			t.Errorf("%s.IsEntry() = %v, want %v", k, got, want[k])
		}
	}
}
