// Package space provides the periodic 2-D domain the population moves
// in: position wrapping, minimum-image distances, and the bucket grid
// used for proximity queries.
package space

import "math"

// Vec2 is a point or vector in the plane.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

// Torus is a rectangular domain with both axes wrapped.
type Torus struct {
	Width  float64
	Height float64
}

// Wrap maps v into [0, Width) × [0, Height).
func (t Torus) Wrap(v Vec2) Vec2 {
	x := math.Mod(v.X, t.Width)
	if x < 0 {
		x += t.Width
	}
	y := math.Mod(v.Y, t.Height)
	if y < 0 {
		y += t.Height
	}
	return Vec2{x, y}
}

// Delta returns the minimum-image vector pointing from a to b.
func (t Torus) Delta(a, b Vec2) Vec2 {
	dx := b.X - a.X
	if dx > t.Width/2 {
		dx -= t.Width
	} else if dx < -t.Width/2 {
		dx += t.Width
	}
	dy := b.Y - a.Y
	if dy > t.Height/2 {
		dy -= t.Height
	} else if dy < -t.Height/2 {
		dy += t.Height
	}
	return Vec2{dx, dy}
}

// Dist returns the minimum-image distance between a and b.
func (t Torus) Dist(a, b Vec2) float64 {
	return t.Delta(a, b).Norm()
}
