package symbol

import "math"

// minSegments is the lowest vertex budget used for curved frames.
const minSegments = 8

// Polyline is an ordered vertex list in the unit's local space (centre at origin).
// Closed polylines have an implicit edge from the last vertex back to the first.
type Polyline struct {
	Points []Vec2
	Closed bool
}

// Outline builds the frame polyline for a unit symbol.
//
//	Land: rectangle, 4 vertices, closed, corners at (±w/2, ±h/2)
//	Sea:  circle of radius w/2, max(8, segments) vertices, closed
//	Sub:  U open at the top, max(8, segments)+5 vertices, open
//	Air:  Sub mirrored vertically (∩ open at the bottom)
//
// Outline is pure: identical inputs always produce identical vertex sequences.
// An unknown frame type falls back to Land.
func Outline(ft FrameType, width, height float64, segments int) Polyline {
	switch ft {
	case FrameSea:
		return circle(width, segments)
	case FrameSub:
		return uShape(width, height, segments, false)
	case FrameAir:
		return uShape(width, height, segments, true)
	default:
		return rectangle(width, height)
	}
}

func rectangle(width, height float64) Polyline {
	w := width * 0.5
	h := height * 0.5
	return Polyline{
		Points: []Vec2{
			{-w, -h},
			{-w, h},
			{w, h},
			{w, -h},
		},
		Closed: true,
	}
}

func circle(width float64, segments int) Polyline {
	n := max(minSegments, segments)
	r := width * 0.5
	pts := make([]Vec2, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n) * 2 * math.Pi
		pts[i] = Vec2{math.Cos(t) * r, math.Sin(t) * r}
	}
	return Polyline{Points: pts, Closed: true}
}

// uShape sweeps the lower half circle (π..2π) between two vertical legs that rise
// to height/2. inverted negates every Y to produce the ∩ variant.
func uShape(width, height float64, segments int, inverted bool) Polyline {
	n := max(minSegments, segments)
	r := width * 0.5
	top := height * 0.5

	pts := make([]Vec2, 0, n+5)
	pts = append(pts, Vec2{-r, top}, Vec2{-r, 0})
	for i := 0; i <= n; i++ {
		t := math.Pi + math.Pi*float64(i)/float64(n)
		pts = append(pts, Vec2{math.Cos(t) * r, math.Sin(t) * r})
	}
	pts = append(pts, Vec2{r, 0}, Vec2{r, top})

	if inverted {
		for i := range pts {
			pts[i].Y = -pts[i].Y
		}
	}
	return Polyline{Points: pts, Closed: false}
}

// OcclusionRadius is the distance from a unit's centre beyond which an arrow may
// start without overlapping the frame stroke.
func OcclusionRadius(width, height, strokeThickness float64) float64 {
	return math.Max(width, height)/2 + 1.5*strokeThickness
}

// Bounds returns the axis-aligned box (local space) enclosing a frame's outline.
func Bounds(ft FrameType, width, height float64) (lo, hi Vec2) {
	r := width * 0.5
	top := height * 0.5
	switch ft {
	case FrameSea:
		return Vec2{-r, -r}, Vec2{r, r}
	case FrameSub:
		return Vec2{-r, -r}, Vec2{r, math.Max(top, 0)}
	case FrameAir:
		return Vec2{-r, math.Min(-top, 0)}, Vec2{r, r}
	default:
		return Vec2{-r, -top}, Vec2{r, top}
	}
}
