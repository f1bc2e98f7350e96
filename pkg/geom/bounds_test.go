package geom

import (
	"math"
	"testing"
)

func TestBoundsDimensions(t *testing.T) {
	b := Bounds{Left: -1.5, Right: 1.5, Bottom: -4, Top: 0}

	if b.Width() != 3 {
		t.Errorf("Width() = %v, want 3", b.Width())
	}
	if b.Height() != 4 {
		t.Errorf("Height() = %v, want 4", b.Height())
	}
	if b.CenterX() != 0 {
		t.Errorf("CenterX() = %v, want 0", b.CenterX())
	}
	if b.CenterY() != -2 {
		t.Errorf("CenterY() = %v, want -2", b.CenterY())
	}
	if b.Area() != 12 {
		t.Errorf("Area() = %v, want 12", b.Area())
	}
}

func TestBoundsAreaDegenerate(t *testing.T) {
	tests := []struct {
		name string
		b    Bounds
	}{
		{"zero width", Bounds{Left: 2, Right: 2, Bottom: 0, Top: 5}},
		{"inverted", Bounds{Left: 3, Right: 1, Bottom: 0, Top: 5}},
		{"zero height", Bounds{Left: 0, Right: 1, Bottom: 5, Top: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Area(); got != 0 {
				t.Errorf("Area() = %v, want 0", got)
			}
		})
	}
}

func TestBoundsExpand(t *testing.T) {
	b := Bounds{Left: -1, Right: 1, Bottom: -7, Top: -1}
	got := b.Expand(1.5, 1)
	want := Bounds{Left: -2.5, Right: 2.5, Bottom: -7, Top: 0}
	if got != want {
		t.Errorf("Expand() = %+v, want %+v", got, want)
	}
}

func TestBoundsOverlaps(t *testing.T) {
	b := Bounds{Left: -1.5, Right: 1.5, Bottom: -4, Top: 0}

	tests := []struct {
		name   string
		lo, hi float64
		buffer float64
		wantX  bool
	}{
		{"inside", -0.1, 0.1, 0, true},
		{"touching right edge", 1.5, 2, 0, false},
		{"touching with buffer", 1.5, 2, 0.05, true},
		{"far left", -5, -3, 0.05, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.OverlapsX(tt.lo, tt.hi, tt.buffer); got != tt.wantX {
				t.Errorf("OverlapsX(%v, %v, %v) = %v, want %v", tt.lo, tt.hi, tt.buffer, got, tt.wantX)
			}
		})
	}

	if !b.OverlapsY(-1, 1, 0) {
		t.Error("OverlapsY should report overlap across the top edge")
	}
	if b.OverlapsY(0.5, 1, 0) {
		t.Error("OverlapsY should not report overlap above the top edge")
	}
}

func TestBoundsIntersects(t *testing.T) {
	a := Bounds{Left: 0, Right: 2, Bottom: 0, Top: 2}
	if !a.Intersects(Bounds{Left: 1, Right: 3, Bottom: 1, Top: 3}) {
		t.Error("overlapping bounds should intersect")
	}
	if a.Intersects(Bounds{Left: 2, Right: 3, Bottom: 0, Top: 2}) {
		t.Error("edge-adjacent bounds should not intersect")
	}
}

func TestBoundsFinite(t *testing.T) {
	if !(Bounds{Left: 1, Right: 2}).Finite() {
		t.Error("finite bounds reported as non-finite")
	}
	if (Bounds{Left: math.NaN()}).Finite() {
		t.Error("NaN bounds reported as finite")
	}
	if (Bounds{Top: math.Inf(1)}).Finite() {
		t.Error("Inf bounds reported as finite")
	}
}

func TestAreaExtend(t *testing.T) {
	a := AreaOf(Bounds{Left: -2, Right: 2, Bottom: -7, Top: 0}, 3)
	got := a.Extend(1, 4)

	if got.Left != -3 || got.Right != 3 {
		t.Errorf("Extend() horizontal = [%v, %v], want [-3, 3]", got.Left, got.Right)
	}
	if got.Bottom != -7 || got.Top != 0 {
		t.Errorf("Extend() vertical = [%v, %v], want [-7, 0]", got.Bottom, got.Top)
	}
	if got.Front != 7 {
		t.Errorf("Extend() Front = %v, want 7", got.Front)
	}
	if a.Front != 3 {
		t.Error("Extend() must not mutate the receiver")
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
