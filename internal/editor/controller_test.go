package editor

import (
	"math"
	"testing"

	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

func TestClick_SelectsUnit(t *testing.T) {
	te := NewTestEditor(WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly))

	te.Click(0.2, 0.1)

	if te.Controller.State() != StateUnitSelected {
		t.Fatalf("state = %s, want %s", te.Controller.State(), StateUnitSelected)
	}
	if id, ok := te.Controller.Selected(); !ok || id != "a" {
		t.Fatalf("selected = %q,%v", id, ok)
	}
	if got := te.SelectedVisuals(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("selected visuals = %v", got)
	}
}

func TestClick_MissIsNoop(t *testing.T) {
	te := NewTestEditor(WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly))

	te.Click(10, 10)
	if te.Controller.State() != StateIdle {
		t.Fatalf("miss from idle changed state to %s", te.Controller.State())
	}

	te.Click(0, 0)
	te.Click(10, 10)
	if id, _ := te.Controller.Selected(); id != "a" {
		t.Fatalf("miss while selected cleared the selection")
	}
}

func TestSelection_ExclusiveAndCommitsPrevious(t *testing.T) {
	te := NewTestEditor(
		WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly),
		WithUnit("b", 6, 0, symbol.FrameSea, symbol.Hostile),
	)

	te.Click(0, 0)
	f := te.Controller.Form()
	f.Center = "2 RIFLES"
	f.Frame = symbol.FrameAir

	te.Click(6, 0)

	a, _ := te.Store.Unit("a")
	if a.Center != "2 RIFLES" || a.Frame != symbol.FrameAir {
		t.Fatalf("A's pending edits were not committed: %+v", a)
	}
	if got := te.SelectedVisuals(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("selected visuals = %v, want only b", got)
	}
	if va, _ := te.Layer.Visual("a"); va.Frame != symbol.FrameAir || va.Labels[1] != "2 RIFLES" {
		t.Fatalf("A's visual was not re-bound: %+v", va)
	}
	if te.Controller.Form().Affiliation != symbol.Hostile {
		t.Fatalf("form not repopulated from B")
	}
}

func TestEditsStayPendingUntilCommit(t *testing.T) {
	te := NewTestEditor(WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly))

	te.Click(0, 0)
	te.Controller.Form().Top = "UK"
	if u, _ := te.Store.Unit("a"); u.Top != "" {
		t.Fatalf("form edit leaked into the store before commit")
	}

	te.Controller.CommitForm()
	if u, _ := te.Store.Unit("a"); u.Top != "UK" {
		t.Fatalf("commit did not write the form, top=%q", u.Top)
	}
	if te.Controller.State() != StateIdle {
		t.Fatalf("commit should clear the selection, state=%s", te.Controller.State())
	}
	if len(te.SelectedVisuals()) != 0 {
		t.Fatalf("visual still marked selected after commit")
	}
}

func TestRightDrag_MovesUnitAndSyncsArrows(t *testing.T) {
	te := NewTestEditor(
		WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly),
		WithUnit("b", -5, -5, symbol.FrameLand, symbol.Hostile),
		WithArrow("a", 10, 0),
		WithArrow("a", 0, 10),
		WithArrow("b", -9, -9),
	)

	// Grab off-centre; the unit must keep the grab offset instead of snapping.
	te.RightDrag(symbol.V(0.5, 0.2), symbol.V(5.5, 5.2), 4)

	u, _ := te.Store.Unit("a")
	if !u.Pos.ApproxEqual(symbol.V(5, 5), 1e-9) {
		t.Fatalf("unit at %v, want (5,5)", u.Pos)
	}
	for _, arr := range te.Store.ArrowsFrom("a") {
		if !arr.From.ApproxEqual(u.Pos, 1e-9) {
			t.Fatalf("arrow from %v not synced to %v", arr.From, u.Pos)
		}
	}
	if arr := te.Store.ArrowsFrom("b")[0]; arr.From != symbol.V(-5, -5) {
		t.Fatalf("unrelated arrow moved to %v", arr.From)
	}
	if te.Controller.State() != StateUnitSelected {
		t.Fatalf("state after release = %s", te.Controller.State())
	}
	if v, _ := te.Layer.Visual("a"); !v.Anchor.ApproxEqual(symbol.V(5, 5), 1e-9) {
		t.Fatalf("visual not re-bound to new position: %v", v.Anchor)
	}
	for _, av := range te.Layer.Arrows() {
		if av.OriginID == "a" && len(av.Points) > 0 && av.Points[0].Dist(symbol.V(5, 5)) > 1.2 {
			t.Fatalf("arrow visual not re-routed: start %v", av.Points[0])
		}
	}
}

func TestRightDrag_SyncsEveryFrame(t *testing.T) {
	te := NewTestEditor(
		WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly),
		WithArrow("a", 10, 0),
	)

	te.Step(Input{Pointer: symbol.V(0, 0), SecondaryPressed: true, SecondaryHeld: true})
	if te.Controller.State() != StateDraggingUnit {
		t.Fatalf("state = %s, want dragging", te.Controller.State())
	}
	te.Step(Input{Pointer: symbol.V(2, 1), SecondaryHeld: true})
	if from := te.Store.ArrowsFrom("a")[0].From; from != symbol.V(2, 1) {
		t.Fatalf("mid-drag arrow from = %v, want (2,1)", from)
	}
}

func TestArrowMode_PlacesOneArrow(t *testing.T) {
	te := NewTestEditor(
		WithUnit("a", 0, 0, symbol.FrameSea, symbol.Hostile),
		WithUnit("b", 0, 0.5, symbol.FrameLand, symbol.Friendly),
	)
	te.Click(0, 0.5)
	te.Controller.Form().Bottom = "III"

	te.Controller.BeginArrow()
	if te.Controller.State() != StateAwaitingArrow {
		t.Fatalf("state = %s, want awaiting", te.Controller.State())
	}
	if u, _ := te.Store.Unit("b"); u.Bottom != "III" {
		t.Fatalf("BeginArrow did not commit pending edits")
	}

	// Clicking on top of another unit places the arrow rather than selecting.
	te.Click(0, 0)

	if te.Controller.State() != StateUnitSelected {
		t.Fatalf("state = %s, want unit_selected", te.Controller.State())
	}
	if id, _ := te.Controller.Selected(); id != "b" {
		t.Fatalf("selection changed to %q", id)
	}
	arrows := te.Store.ArrowsFrom("b")
	if len(arrows) != 1 || arrows[0].To != symbol.V(0, 0) {
		t.Fatalf("arrows = %+v", arrows)
	}
	if arrows[0].Color != symbol.FriendlyColor {
		t.Fatalf("arrow color = %v, want origin affiliation color", arrows[0].Color)
	}

	te.Click(5, 5)
	if n := len(te.Store.ArrowsFrom("b")); n != 1 {
		t.Fatalf("second click created another arrow, have %d", n)
	}
}

func TestArrowMode_CancelAndNoSelection(t *testing.T) {
	te := NewTestEditor(WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly))

	te.Controller.BeginArrow()
	if te.Controller.State() != StateIdle {
		t.Fatalf("BeginArrow without selection must be a no-op")
	}

	te.Click(0, 0)
	te.Controller.BeginArrow()
	te.Step(Input{Pointer: symbol.V(0, 0), SecondaryPressed: true, SecondaryHeld: true})
	if te.Controller.State() != StateAwaitingArrow {
		t.Fatalf("secondary press while awaiting should be ignored, state=%s", te.Controller.State())
	}
	te.Controller.CancelArrow()
	te.Click(4, 4)
	if _, arrows := te.Store.Len(); arrows != 0 {
		t.Fatalf("cancelled arrow mode still placed %d arrows", arrows)
	}
	if te.Controller.State() != StateUnitSelected {
		t.Fatalf("state = %s", te.Controller.State())
	}
}

func TestDeleteSelected_Cascades(t *testing.T) {
	te := NewTestEditor(
		WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly),
		WithUnit("b", 5, 0, symbol.FrameLand, symbol.Friendly),
		WithArrow("a", 1, 1),
		WithArrow("a", 2, 2),
		WithArrow("a", 3, 3),
		WithArrow("b", 4, 4),
	)

	te.Controller.DeleteSelected()
	if units, _ := te.Store.Len(); units != 2 {
		t.Fatalf("delete without selection removed a unit")
	}

	te.Click(0, 0)
	te.Controller.DeleteSelected()

	units, arrows := te.Store.Len()
	if units != 1 || arrows != 1 {
		t.Fatalf("after delete: %d units, %d arrows; want 1, 1", units, arrows)
	}
	if _, ok := te.Layer.Visual("a"); ok {
		t.Fatalf("deleted unit still has a visual")
	}
	if len(te.Layer.Arrows()) != 1 {
		t.Fatalf("arrow visuals not rebuilt")
	}
	if te.Controller.State() != StateIdle {
		t.Fatalf("state = %s", te.Controller.State())
	}
	if !te.Log.HasEntry("unit", "delete", "3 arrows") {
		t.Fatalf("delete not logged:\n%s", te.Log.Format())
	}
}

func TestDeleteArrowsFromSelected(t *testing.T) {
	te := NewTestEditor(
		WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly),
		WithArrow("a", 1, 1),
		WithArrow("a", 2, 2),
	)
	te.Click(0, 0)
	te.Controller.DeleteArrowsFromSelected()

	if units, arrows := te.Store.Len(); units != 1 || arrows != 0 {
		t.Fatalf("got %d units, %d arrows", units, arrows)
	}
	if id, _ := te.Controller.Selected(); id != "a" {
		t.Fatalf("selection lost")
	}
}

func TestAddUnit_LandFriendlySelected(t *testing.T) {
	te := NewTestEditor(WithUnit("a", 5, 5, symbol.FrameSea, symbol.Hostile))
	te.Click(5, 5)
	te.Controller.Form().Center = "ENEMY"

	id := te.Controller.AddUnit(symbol.V(1, 2))

	u, ok := te.Store.Unit(id)
	if !ok {
		t.Fatalf("unit not added")
	}
	if u.Frame != symbol.FrameLand || u.Affiliation != symbol.Friendly || u.Top+u.Center+u.Bottom != "" {
		t.Fatalf("new unit = %+v", u)
	}
	if sel, _ := te.Controller.Selected(); sel != id {
		t.Fatalf("new unit not selected")
	}
	if a, _ := te.Store.Unit("a"); a.Center != "ENEMY" {
		t.Fatalf("previous selection not committed")
	}
}

func TestEscape_TogglesMenuOnly(t *testing.T) {
	te := NewTestEditor(WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly))
	te.Click(0, 0)
	te.Controller.BeginArrow()

	te.PressEscape()
	if !te.Controller.MenuVisible() {
		t.Fatalf("menu not shown")
	}
	if te.Controller.State() != StateAwaitingArrow {
		t.Fatalf("escape changed interaction state to %s", te.Controller.State())
	}
	te.PressEscape()
	if te.Controller.MenuVisible() {
		t.Fatalf("menu not hidden")
	}
}

func TestZoom_RefreshesStrokeWidth(t *testing.T) {
	te := NewTestEditor(WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly))

	te.Zoom(40)
	v, _ := te.Layer.Visual("a")
	if math.Abs(v.StrokeWidth-0.4) > 1e-9 {
		t.Fatalf("stroke width at ortho 40 = %v, want 0.4", v.StrokeWidth)
	}
}

func TestScenario_AddDragDeleteSave(t *testing.T) {
	te := NewTestEditor()

	id := te.Controller.AddUnit(symbol.V(0, 0))
	v, _ := te.Layer.Visual(id)
	want := []symbol.Vec2{{X: -1, Y: -0.6}, {X: -1, Y: 0.6}, {X: 1, Y: 0.6}, {X: 1, Y: -0.6}}
	if len(v.Outline.Points) != 4 {
		t.Fatalf("land outline has %d vertices", len(v.Outline.Points))
	}
	for i, p := range want {
		if !v.Outline.Points[i].ApproxEqual(p, 1e-9) {
			t.Fatalf("vertex %d = %v, want %v", i, v.Outline.Points[i], p)
		}
	}

	te.Controller.BeginArrow()
	te.Click(8, 0)
	te.RightDrag(symbol.V(0, 0), symbol.V(5, 5), 3)
	if from := te.Store.ArrowsFrom(id)[0].From; !from.ApproxEqual(symbol.V(5, 5), 1e-9) {
		t.Fatalf("arrow from = %v, want (5,5)", from)
	}

	te.Controller.DeleteSelected()
	if units, arrows := te.Store.Len(); units != 0 || arrows != 0 {
		t.Fatalf("store not empty: %d units, %d arrows", units, arrows)
	}
	t.Log(te.Log.Format())
}

func TestStateTransitionsAreLogged(t *testing.T) {
	te := NewTestEditor(WithUnit("a", 0, 0, symbol.FrameLand, symbol.Friendly))
	te.Click(0, 0)
	te.Controller.BeginArrow()
	te.Click(3, 3)
	te.Controller.Deselect()

	for _, ev := range []string{evSelect, evArrowBegin, evArrowPlace, evDeselect} {
		if te.Log.Count("state", ev) != 1 {
			t.Fatalf("expected one %q transition, log:\n%s", ev, te.Log.Format())
		}
	}
	last, ok := te.Log.LastOf("state", "")
	if !ok || last.Value != "unit_selected → idle" {
		t.Fatalf("unexpected last transition %+v", last)
	}
}
