package view

import (
	"fmt"

	"github.com/Garsondee/Symbol-Sense/internal/store"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

// Renderer is the drawing boundary. Points are world-space.
type Renderer interface {
	StrokePolyline(points []symbol.Vec2, closed bool, width float64, c symbol.Color)
	DrawLabels(anchor symbol.Vec2, labels [3]string, c symbol.Color)
}

// Layer keeps one Visual per unit plus the arrow visuals. It is owned by the
// frame loop and is not safe for concurrent use.
type Layer struct {
	binder  Binder
	cluster Clusterer

	visuals map[string]*Visual
	order   []string
	arrows  []ArrowVisual

	ortho     float64
	viewportH float64
}

// NewLayer returns an empty layer.
func NewLayer(b Binder) *Layer {
	return &Layer{
		binder:  b,
		visuals: make(map[string]*Visual),
		ortho:   b.RefOrtho,
	}
}

// Binder returns the layer's binder.
func (l *Layer) Binder() Binder { return l.binder }

// SetClusterer enables importance clustering at draw time.
func (l *Layer) SetClusterer(c Clusterer) { l.cluster = c }

// SetViewportHeight records the viewport height in pixels, used to size cluster cells.
func (l *Layer) SetViewportHeight(h float64) { l.viewportH = h }

// Ortho returns the zoom the visuals were last bound at.
func (l *Layer) Ortho() float64 { return l.ortho }

// Sync rebuilds every visual from the store.
func (l *Layer) Sync(s *store.Store, selectedID string, ortho float64) {
	l.ortho = ortho
	l.visuals = make(map[string]*Visual)
	l.order = l.order[:0]
	for _, u := range s.Units() {
		v := l.binder.Bind(u, u.ID == selectedID, ortho)
		l.visuals[u.ID] = &v
		l.order = append(l.order, u.ID)
	}
	l.SyncArrows(s)
}

// SyncArrows re-routes every arrow from the store.
func (l *Layer) SyncArrows(s *store.Store) {
	arrows := s.Arrows()
	l.arrows = l.arrows[:0]
	for _, a := range arrows {
		_, found := s.Unit(a.OriginID)
		l.arrows = append(l.arrows, l.binder.BindArrow(a, found, l.ortho))
	}
}

// Rebind refreshes a single unit's visual, adding it if new.
func (l *Layer) Rebind(u store.Unit, selected bool, ortho float64) {
	v := l.binder.Bind(u, selected, ortho)
	if _, ok := l.visuals[u.ID]; !ok {
		l.order = append(l.order, u.ID)
	}
	l.visuals[u.ID] = &v
}

// Refresh recomputes zoom-dependent widths. It does nothing when ortho is unchanged.
func (l *Layer) Refresh(ortho float64) {
	if ortho == l.ortho {
		return
	}
	l.ortho = ortho
	w := l.binder.StrokeWidth(ortho)
	for _, v := range l.visuals {
		v.StrokeWidth = w
	}
	aw := zoomScaled(l.binder.ArrowWidth, ortho, l.binder.RefOrtho)
	for i := range l.arrows {
		l.arrows[i].Width = aw
	}
}

// Remove drops a unit's visual.
func (l *Layer) Remove(id string) {
	if _, ok := l.visuals[id]; !ok {
		return
	}
	delete(l.visuals, id)
	for i, oid := range l.order {
		if oid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Visual returns a copy of the visual for id.
func (l *Layer) Visual(id string) (Visual, bool) {
	v, ok := l.visuals[id]
	if !ok {
		return Visual{}, false
	}
	return *v, true
}

// Visuals returns all unit visuals in draw order.
func (l *Layer) Visuals() []Visual {
	out := make([]Visual, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.visuals[id])
	}
	return out
}

// Arrows returns the arrow visuals.
func (l *Layer) Arrows() []ArrowVisual {
	out := make([]ArrowVisual, len(l.arrows))
	copy(out, l.arrows)
	return out
}

// HitTest returns the topmost unit whose frame bounds contain p.
func (l *Layer) HitTest(p symbol.Vec2) (string, bool) {
	for i := len(l.order) - 1; i >= 0; i-- {
		v := l.visuals[l.order[i]]
		if v.Contains(p, l.binder) {
			return v.ID, true
		}
	}
	return "", false
}

// Draw emits arrows then units, clustered when the clusterer is active.
func (l *Layer) Draw(r Renderer) {
	for _, a := range l.arrows {
		if len(a.Points) == 0 {
			continue
		}
		r.StrokePolyline(a.Points, false, a.Width, a.Color)
	}

	visuals := l.cluster.Apply(l.Visuals(), l.ortho, l.viewportH)
	for _, v := range visuals {
		r.StrokePolyline(v.WorldOutline(), v.Outline.Closed, v.StrokeWidth, v.Color)
		labels := v.Labels
		if v.ClusterSize > 1 {
			labels[2] = fmt.Sprintf("%s +%d", labels[2], v.ClusterSize-1)
		}
		r.DrawLabels(v.Anchor, labels, v.Color)
	}
}
