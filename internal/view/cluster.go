package view

import (
	"math"

	"github.com/Garsondee/Symbol-Sense/internal/config"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

// Clusterer collapses units sharing a screen cell into one representative
// when zoomed out. The zero value is disabled.
type Clusterer struct {
	Enabled               bool
	CellSizePixels        float64
	NoClusterMaxOrthoSize float64
}

// NewClusterer builds a Clusterer from config.
func NewClusterer(c config.ClusterConfig) Clusterer {
	return Clusterer{
		Enabled:               c.Enabled,
		CellSizePixels:        c.CellSizePixels,
		NoClusterMaxOrthoSize: c.NoClusterMaxOrthoSize,
	}
}

// Active reports whether clustering applies at this zoom.
func (c Clusterer) Active(ortho, viewportH float64) bool {
	return c.Enabled && c.CellSizePixels > 0 && viewportH > 0 && ortho > c.NoClusterMaxOrthoSize
}

type cellKey struct{ x, y int }

type cell struct {
	rep   int
	sum   symbol.Vec2
	count int
}

// Apply returns the visuals to draw. The input is never modified. Each cell
// yields its highest-importance member (first on ties) placed at the cell's
// mean position, with ClusterSize set to the member count.
func (c Clusterer) Apply(vs []Visual, ortho, viewportH float64) []Visual {
	if !c.Active(ortho, viewportH) {
		return vs
	}
	// World units per pixel is 2*ortho/viewportH.
	worldCell := c.CellSizePixels * 2 * ortho / viewportH

	cells := make(map[cellKey]*cell)
	var keys []cellKey
	for i, v := range vs {
		k := cellKey{
			x: int(math.Floor(v.Anchor.X / worldCell)),
			y: int(math.Floor(v.Anchor.Y / worldCell)),
		}
		cl, ok := cells[k]
		if !ok {
			cl = &cell{rep: i}
			cells[k] = cl
			keys = append(keys, k)
		} else if v.Importance > vs[cl.rep].Importance {
			cl.rep = i
		}
		cl.sum = cl.sum.Add(v.Anchor)
		cl.count++
	}

	out := make([]Visual, 0, len(keys))
	for _, k := range keys {
		cl := cells[k]
		v := vs[cl.rep]
		v.Anchor = cl.sum.Scale(1 / float64(cl.count))
		v.ClusterSize = cl.count
		out = append(out, v)
	}
	return out
}
