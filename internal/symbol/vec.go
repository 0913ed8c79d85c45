package symbol

import "math"

// Vec2 is a point or direction in world space. World Y points up.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(k float64) Vec2 { return Vec2{a.X * k, a.Y * k} }
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }
func (a Vec2) LenSq() float64 { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Len() float64 { return math.Sqrt(a.LenSq()) }
func (a Vec2) Neg() Vec2 { return Vec2{-a.X, -a.Y} }
func (a Vec2) Dist(b Vec2) float64 { return b.Sub(a).Len() }
func (a Vec2) Equal(b Vec2) bool { return a.X == b.X && a.Y == b.Y }
func (a Vec2) ApproxEqual(b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// Normalize returns the unit vector in the direction of a.
// The zero vector is returned unchanged.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return Vec2{a.X / l, a.Y / l}
}

// Rotate rotates a counter-clockwise by deg degrees.
func (a Vec2) Rotate(deg float64) Vec2 {
	rad := deg * math.Pi / 180
	s, c := math.Sincos(rad)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}
