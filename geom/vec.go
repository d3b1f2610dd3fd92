package geom

import "math"

// Vec2 is a 2D point or extent in screen space. Positive Y goes down.
type Vec2 struct {
	X, Y float32
}

func V(x, y float32) Vec2 { return Vec2{x, y} }

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float32) Vec2    { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Neg() Vec2             { return Vec2{-v.X, -v.Y} }
func (v Vec2) Min(o Vec2) Vec2       { return Vec2{Minf(v.X, o.X), Minf(v.Y, o.Y)} }
func (v Vec2) Max(o Vec2) Vec2       { return Vec2{Maxf(v.X, o.X), Maxf(v.Y, o.Y)} }
func (v Vec2) Len() float32          { return float32(math.Hypot(float64(v.X), float64(v.Y))) }
func (v Vec2) DistTo(o Vec2) float32 { return o.Sub(v).Len() }

// IsNaN reports whether either component is NaN.
func (v Vec2) IsNaN() bool {
	return math.IsNaN(float64(v.X)) || math.IsNaN(float64(v.Y))
}

func Minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func Lerp(a, b, t float32) float32 { return a + (b-a)*t }

// Sanitize clamps NaN and negative values to zero. Layout inputs pass
// through here so every resolved rect stays finite and non-negative.
func Sanitize(v float32) float32 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) || v < 0 {
		return 0
	}
	return v
}

// Finite zeroes NaN and infinities but keeps sign otherwise.
func Finite(v float32) float32 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0
	}
	return v
}
