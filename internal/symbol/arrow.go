package symbol

// Arrow routing defaults.
const (
	DefaultHeadLength  = 0.7
	DefaultHeadAngle   = 25.0 // degrees either side of straight back
	DefaultEndOffset   = 0.3  // arrows stop this far short of the target point
	DefaultStartOffset = 0.5  // used when the origin unit cannot be resolved

	// degenerateLenSq is the squared length below which an arrow is suppressed.
	degenerateLenSq = 1e-4
)

// ArrowHead sizes the two head wings.
type ArrowHead struct {
	Length float64
	Angle  float64 // degrees
}

// DefaultArrowHead returns the stock head shape.
func DefaultArrowHead() ArrowHead {
	return ArrowHead{Length: DefaultHeadLength, Angle: DefaultHeadAngle}
}

// Route computes an arrow polyline from → to with the stock head shape.
// See RouteWith.
func Route(from, to Vec2, startOffset, endOffset float64) []Vec2 {
	return RouteWith(from, to, startOffset, endOffset, DefaultArrowHead())
}

// RouteWith returns the open 5-point polyline start, end, headLeft, end, headRight,
// which draws the shaft and both wings as one continuous stroke. The start is
// pushed startOffset along the direction from `from`, the end pulled back
// endOffset from `to`. Wings are the reverse direction rotated ±head.Angle and
// scaled by head.Length.
//
// When from and to (nearly) coincide the arrow is suppressed and nil is returned.
func RouteWith(from, to Vec2, startOffset, endOffset float64, head ArrowHead) []Vec2 {
	d := to.Sub(from)
	if d.LenSq() < degenerateLenSq {
		return nil
	}
	dir := d.Normalize()

	start := from.Add(dir.Scale(startOffset))
	end := to.Sub(dir.Scale(endOffset))

	back := dir.Neg()
	left := end.Add(back.Rotate(head.Angle).Scale(head.Length))
	right := end.Add(back.Rotate(-head.Angle).Scale(head.Length))

	return []Vec2{start, end, left, end, right}
}
