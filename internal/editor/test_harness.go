package editor

import (
	"github.com/rs/zerolog"

	"github.com/Garsondee/Symbol-Sense/internal/config"
	"github.com/Garsondee/Symbol-Sense/internal/store"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
	"github.com/Garsondee/Symbol-Sense/internal/view"
)

// TestEditor is a headless editor harness used by tests. It mirrors
// Game.Update but has no Ebiten dependency: input is scripted frame by frame.
type TestEditor struct {
	Store      *store.Store
	Layer      *view.Layer
	Controller *Controller
	Log        *ActionLog
	Ortho      float64

	cfg config.Config
}

// editorOptionKind controls the pass in which an option is applied.
type editorOptionKind int

const (
	edOptInfra editorOptionKind = iota // config, zoom — applied first
	edOptUnit                          // add units
	edOptArrow                         // add arrows — applied after units exist
)

// EditorOption is a builder function applied to a TestEditor during construction.
type EditorOption struct {
	kind editorOptionKind
	fn   func(*TestEditor)
}

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) EditorOption {
	return EditorOption{edOptInfra, func(te *TestEditor) {
		te.cfg = cfg
	}}
}

// WithOrtho sets the starting zoom.
func WithOrtho(ortho float64) EditorOption {
	return EditorOption{edOptInfra, func(te *TestEditor) {
		te.Ortho = ortho
	}}
}

// WithUnit adds a unit with the given id, position, frame and affiliation.
func WithUnit(id string, x, y float64, ft symbol.FrameType, aff symbol.Affiliation) EditorOption {
	return EditorOption{edOptUnit, func(te *TestEditor) {
		if _, err := te.Store.AddUnit(store.Unit{ID: id, Pos: symbol.V(x, y), Frame: ft, Affiliation: aff}); err != nil {
			panic(err)
		}
	}}
}

// WithArrow adds an arrow from an existing unit to (tx,ty).
func WithArrow(originID string, tx, ty float64) EditorOption {
	return EditorOption{edOptArrow, func(te *TestEditor) {
		u, ok := te.Store.Unit(originID)
		if !ok {
			panic("WithArrow: unknown origin " + originID)
		}
		if _, err := te.Store.AddArrow(originID, symbol.V(tx, ty), symbol.AffiliationColor(u.Affiliation)); err != nil {
			panic(err)
		}
	}}
}

// NewTestEditor constructs a TestEditor from the given options in ordered passes:
//  1. Infrastructure (config, zoom)
//  2. Units
//  3. Arrows
//  4. Bind the view layer
func NewTestEditor(opts ...EditorOption) *TestEditor {
	te := &TestEditor{
		Store: store.New(),
		Log:   NewActionLog(0),
		cfg:   config.Default(),
	}
	for _, o := range opts {
		if o.kind == edOptInfra {
			o.fn(te)
		}
	}
	if te.Ortho == 0 {
		te.Ortho = te.cfg.Zoom.ReferenceOrthoSize
	}
	for _, o := range opts {
		if o.kind == edOptUnit {
			o.fn(te)
		}
	}
	for _, o := range opts {
		if o.kind == edOptArrow {
			o.fn(te)
		}
	}
	te.Layer = view.NewLayer(view.NewBinder(te.cfg))
	te.Controller = NewController(te.Store, te.Layer, te.Log, zerolog.Nop())
	te.Controller.Reset(te.Ortho)
	return te
}

// Step runs one frame with the given input; Ortho is filled in when unset.
func (te *TestEditor) Step(in Input) {
	if in.Ortho == 0 {
		in.Ortho = te.Ortho
	}
	te.Controller.Frame(in)
}

// RunFrames advances n idle frames.
func (te *TestEditor) RunFrames(n int) {
	for i := 0; i < n; i++ {
		te.Step(Input{})
	}
}

// Click presses and releases the primary button at (x,y).
func (te *TestEditor) Click(x, y float64) {
	p := symbol.V(x, y)
	te.Step(Input{Pointer: p, PrimaryPressed: true, PrimaryHeld: true})
	te.Step(Input{Pointer: p, PrimaryReleased: true})
}

// RightDrag presses the secondary button at from, moves to `to` over steps
// frames with the button held, then releases.
func (te *TestEditor) RightDrag(from, to symbol.Vec2, steps int) {
	if steps < 1 {
		steps = 1
	}
	te.Step(Input{Pointer: from, SecondaryPressed: true, SecondaryHeld: true})
	for i := 1; i <= steps; i++ {
		p := from.Add(to.Sub(from).Scale(float64(i) / float64(steps)))
		te.Step(Input{Pointer: p, SecondaryHeld: true})
	}
	te.Step(Input{Pointer: to, SecondaryReleased: true})
}

// PressEscape sends one escape edge.
func (te *TestEditor) PressEscape() {
	te.Step(Input{Escape: true})
}

// Zoom changes the orthographic size for subsequent frames and runs one frame.
func (te *TestEditor) Zoom(ortho float64) {
	te.Ortho = ortho
	te.RunFrames(1)
}

// SelectedVisuals returns the ids of every visual marked selected.
func (te *TestEditor) SelectedVisuals() []string {
	var out []string
	for _, v := range te.Layer.Visuals() {
		if v.Selected {
			out = append(out, v.ID)
		}
	}
	return out
}
