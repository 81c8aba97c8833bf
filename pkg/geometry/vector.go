package geometry

import "math"

// Vector2 represents a point or displacement in 2-D canvas space.
// Canvas space is y-up: larger Y is further toward the top of the diagram.
type Vector2 struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two vectors
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of two vectors
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns the component-wise product of two vectors.
// Used for applying sign masks during block resizing.
func (v Vector2) Mul(o Vector2) Vector2 {
	return Vector2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Scale returns the vector multiplied by a scalar
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Length returns the Euclidean length of the vector
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two points
func (v Vector2) Dist(o Vector2) float64 {
	return v.Sub(o).Length()
}

// Lerp linearly interpolates between a and b by t.
// t is not clamped; callers clamp where the interpolation must stay in range.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to the inclusive range [lo, hi].
// If lo > hi the midpoint of the two bounds is returned.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
