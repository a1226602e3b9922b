package space

import (
	"math"
	"testing"
)

func TestWrapMapsIntoDomain(t *testing.T) {
	tor := Torus{Width: 10, Height: 8}

	cases := []struct {
		in, want Vec2
	}{
		{Vec2{3, 4}, Vec2{3, 4}},
		{Vec2{-1, -1}, Vec2{9, 7}},
		{Vec2{10, 8}, Vec2{0, 0}},
		{Vec2{23, -9}, Vec2{3, 7}},
	}
	for _, c := range cases {
		got := tor.Wrap(c.in)
		if math.Abs(got.X-c.want.X) > 1e-12 || math.Abs(got.Y-c.want.Y) > 1e-12 {
			t.Errorf("Wrap(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMinimumImageDistance(t *testing.T) {
	tor := Torus{Width: 10, Height: 10}

	// Across the x seam: 0.5 and 9.5 are one unit apart, not nine.
	if d := tor.Dist(Vec2{0.5, 5}, Vec2{9.5, 5}); math.Abs(d-1) > 1e-12 {
		t.Fatalf("seam distance = %g, want 1", d)
	}

	// The delta points the short way round.
	delta := tor.Delta(Vec2{0.5, 5}, Vec2{9.5, 5})
	if delta.X != -1 || delta.Y != 0 {
		t.Fatalf("seam delta = %v, want (-1,0)", delta)
	}

	// Interior distances are plain Euclidean.
	if d := tor.Dist(Vec2{1, 1}, Vec2{4, 5}); math.Abs(d-5) > 1e-12 {
		t.Fatalf("interior distance = %g, want 5", d)
	}
}

func TestVecOps(t *testing.T) {
	v := Vec2{3, 4}
	if v.Norm() != 5 {
		t.Fatalf("norm = %g, want 5", v.Norm())
	}
	if got := v.Add(Vec2{1, -1}); got != (Vec2{4, 3}) {
		t.Fatalf("add = %v", got)
	}
	if got := v.Scale(2); got != (Vec2{6, 8}) {
		t.Fatalf("scale = %v", got)
	}
	if got := v.Dot(Vec2{2, 1}); got != 10 {
		t.Fatalf("dot = %g", got)
	}
}
