// Package view turns store entities into renderable visuals.
package view

import (
	"github.com/Garsondee/Symbol-Sense/internal/config"
	"github.com/Garsondee/Symbol-Sense/internal/store"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

// selectedBlend is how far a selected unit's color moves toward SelectedTint.
const selectedBlend = 0.5

// Binder maps entities to visuals. It holds only configuration, so one value
// can be shared freely.
type Binder struct {
	FrameWidth    float64
	FrameHeight   float64
	Segments      int
	LineThickness float64 // world width at RefOrtho
	RefOrtho      float64

	ArrowWidth         float64
	EndOffset          float64
	DefaultStartOffset float64
	Head               symbol.ArrowHead
}

// NewBinder builds a Binder from the frame, zoom and arrow settings.
func NewBinder(cfg config.Config) Binder {
	return Binder{
		FrameWidth:         cfg.Frame.Width,
		FrameHeight:        cfg.Frame.Height,
		Segments:           cfg.Frame.CircleSegments,
		LineThickness:      cfg.Frame.LineThickness,
		RefOrtho:           cfg.Zoom.ReferenceOrthoSize,
		ArrowWidth:         cfg.Arrow.LineWidth,
		EndOffset:          cfg.Arrow.EndOffset,
		DefaultStartOffset: cfg.Arrow.DefaultStartOffset,
		Head:               symbol.ArrowHead{Length: cfg.Arrow.HeadLength, Angle: cfg.Arrow.HeadAngle},
	}
}

// DefaultBinder returns a Binder with the built-in configuration.
func DefaultBinder() Binder {
	return NewBinder(config.Default())
}

// Visual is the renderable state of one unit.
type Visual struct {
	ID          string
	Anchor      symbol.Vec2
	Frame       symbol.FrameType
	Outline     symbol.Polyline // local space, centred on Anchor
	StrokeWidth float64
	Color       symbol.Color
	Labels      [3]string // top, centre, bottom
	Selected    bool
	Importance  uint8
	ClusterSize int
}

// WorldOutline returns the outline translated to the anchor.
func (v Visual) WorldOutline() []symbol.Vec2 {
	pts := make([]symbol.Vec2, len(v.Outline.Points))
	for i, p := range v.Outline.Points {
		pts[i] = p.Add(v.Anchor)
	}
	return pts
}

// Contains reports whether world point p lies inside the frame's bounds.
func (v Visual) Contains(p symbol.Vec2, b Binder) bool {
	lo, hi := symbol.Bounds(v.Frame, b.FrameWidth, b.FrameHeight)
	d := p.Sub(v.Anchor)
	return d.X >= lo.X && d.X <= hi.X && d.Y >= lo.Y && d.Y <= hi.Y
}

// ArrowVisual is the renderable state of one arrow. Points is empty for a
// degenerate arrow.
type ArrowVisual struct {
	ID       store.ArrowID
	OriginID string
	Points   []symbol.Vec2
	Width    float64
	Color    symbol.Color
	Inert    bool // origin unit is missing
}

// StrokeWidth keeps strokes at a constant apparent size: the base thickness
// grows linearly with the orthographic size.
func (b Binder) StrokeWidth(ortho float64) float64 {
	return zoomScaled(b.LineThickness, ortho, b.RefOrtho)
}

func zoomScaled(base, ortho, ref float64) float64 {
	if ref <= 0 || ortho <= 0 {
		return base
	}
	return base * (ortho / ref)
}

// Color returns the affiliation color, blended toward the highlight when selected.
func (b Binder) Color(a symbol.Affiliation, selected bool) symbol.Color {
	c := symbol.AffiliationColor(a)
	if selected {
		c = c.Lerp(symbol.SelectedTint, selectedBlend)
	}
	return c
}

// Bind produces the visual for u. It is a pure function of its inputs.
func (b Binder) Bind(u store.Unit, selected bool, ortho float64) Visual {
	return Visual{
		ID:          u.ID,
		Anchor:      u.Pos,
		Frame:       u.Frame,
		Outline:     symbol.Outline(u.Frame, b.FrameWidth, b.FrameHeight, b.Segments),
		StrokeWidth: b.StrokeWidth(ortho),
		Color:       b.Color(u.Affiliation, selected),
		Labels:      [3]string{u.Top, u.Center, u.Bottom},
		Selected:    selected,
		Importance:  u.Importance,
		ClusterSize: 1,
	}
}

// StartOffset is how far from the origin an arrow starts. Arrows whose origin
// is missing fall back to the configured default.
func (b Binder) StartOffset(originFound bool) float64 {
	if !originFound {
		return b.DefaultStartOffset
	}
	return symbol.OcclusionRadius(b.FrameWidth, b.FrameHeight, b.LineThickness)
}

// BindArrow routes a and produces its visual.
func (b Binder) BindArrow(a store.Arrow, originFound bool, ortho float64) ArrowVisual {
	return ArrowVisual{
		ID:       a.ID,
		OriginID: a.OriginID,
		Points:   symbol.RouteWith(a.From, a.To, b.StartOffset(originFound), b.EndOffset, b.Head),
		Width:    zoomScaled(b.ArrowWidth, ortho, b.RefOrtho),
		Color:    a.Color,
		Inert:    !originFound,
	}
}
