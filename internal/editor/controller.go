package editor

import (
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Symbol-Sense/internal/store"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
	"github.com/Garsondee/Symbol-Sense/internal/view"
)

// Input is the per-frame input snapshot. Pointer is in world space.
type Input struct {
	Pointer symbol.Vec2

	PrimaryPressed  bool
	PrimaryHeld     bool
	PrimaryReleased bool

	SecondaryPressed  bool
	SecondaryHeld     bool
	SecondaryReleased bool

	Escape bool
	Ortho  float64 // current orthographic size (visible half-height); the host camera owns zoom
}

// Controller drives selection, dragging and arrow drawing. It is the only
// mutator of the store during interaction and must be called from one goroutine.
type Controller struct {
	store   *store.Store
	layer   *view.Layer
	actions *ActionLog
	log     zerolog.Logger
	machine *fsm.FSM

	selected    string
	form        Form
	dragOffset  symbol.Vec2
	menuVisible bool
	frame       int
}

// NewController wires a controller to a store and its view layer.
func NewController(s *store.Store, l *view.Layer, actions *ActionLog, log zerolog.Logger) *Controller {
	c := &Controller{
		store:   s,
		layer:   l,
		actions: actions,
		log:     log,
	}
	c.machine = newMachine(func(from, to, event string) {
		c.actions.Add(c.frame, c.selected, "state", event, fmt.Sprintf("%s → %s", from, to))
	})
	return c
}

// Selected returns the selected unit id.
func (c *Controller) Selected() (string, bool) {
	return c.selected, c.selected != ""
}

// Form returns the pending edit form. It is only meaningful while a unit is selected.
func (c *Controller) Form() *Form { return &c.form }

// MenuVisible reports whether the overlay menu is shown.
func (c *Controller) MenuVisible() bool { return c.menuVisible }

// ToggleMenu flips the overlay menu. It does not touch interaction state.
func (c *Controller) ToggleMenu() {
	c.menuVisible = !c.menuVisible
	c.actions.Add(c.frame, "", "menu", "toggle", fmt.Sprintf("visible=%t", c.menuVisible))
}

// FrameCount returns how many input frames have been processed.
func (c *Controller) FrameCount() int { return c.frame }

// Frame processes one input snapshot.
func (c *Controller) Frame(in Input) {
	c.frame++

	if in.Escape {
		c.ToggleMenu()
	}
	if in.Ortho > 0 {
		c.layer.Refresh(in.Ortho)
	}

	switch c.State() {
	case StateAwaitingArrow:
		if in.PrimaryPressed {
			c.placeArrow(in.Pointer)
		}
		return
	case StateDraggingUnit:
		if in.SecondaryHeld {
			c.moveSelected(in.Pointer.Add(c.dragOffset))
		}
		if in.SecondaryReleased || !in.SecondaryHeld {
			c.actions.Add(c.frame, c.selected, "unit", "drag_end", fmtVec(in.Pointer.Add(c.dragOffset)))
			c.fire(evDragEnd)
		}
		return
	}

	if in.PrimaryPressed {
		if id, ok := c.layer.HitTest(in.Pointer); ok {
			c.selectUnit(id)
		}
	}
	if in.SecondaryPressed {
		if id, ok := c.layer.HitTest(in.Pointer); ok {
			c.selectUnit(id)
			u, _ := c.store.Unit(id)
			c.dragOffset = u.Pos.Sub(in.Pointer)
			c.actions.Add(c.frame, id, "unit", "drag_start", fmtVec(u.Pos))
			c.fire(evDragStart)
		}
	}
}

// selectUnit makes id the sole selection. The previous selection's pending
// edits are committed first.
func (c *Controller) selectUnit(id string) {
	if c.selected == id {
		return
	}
	switch c.State() {
	case StateAwaitingArrow:
		c.fire(evArrowCancel)
	case StateDraggingUnit:
		c.fire(evDragEnd)
	}
	if c.selected != "" {
		c.commit()
		c.rebind(c.selected, false)
	}

	u, ok := c.store.Unit(id)
	if !ok {
		return
	}
	c.selected = id
	c.form = formFrom(u)
	c.rebind(id, true)
	c.actions.Add(c.frame, id, "unit", "select", u.Center)
	c.fire(evSelect)
}

// commit writes the form back to the selected unit.
func (c *Controller) commit() {
	if c.selected == "" {
		return
	}
	err := c.store.UpdateUnit(c.selected, c.form.apply)
	if err != nil {
		c.log.Warn().Err(err).Str("unit", c.selected).Msg("commit failed")
		return
	}
	c.actions.Add(c.frame, c.selected, "form", "commit",
		fmt.Sprintf("%s %s [%s|%s|%s]", c.form.Frame, c.form.Affiliation, c.form.Top, c.form.Center, c.form.Bottom))
}

// release commits pending edits and clears the selection.
func (c *Controller) release() {
	if c.selected == "" {
		return
	}
	c.commit()
	id := c.selected
	c.selected = ""
	c.form = Form{}
	c.rebind(id, false)
	c.fire(evDeselect)
}

func (c *Controller) rebind(id string, selected bool) {
	u, ok := c.store.Unit(id)
	if !ok {
		c.layer.Remove(id)
		return
	}
	c.layer.Rebind(u, selected, c.layer.Ortho())
}

func (c *Controller) moveSelected(pos symbol.Vec2) {
	if err := c.store.MoveUnit(c.selected, pos); err != nil {
		c.log.Warn().Err(err).Str("unit", c.selected).Msg("move failed")
		return
	}
	c.rebind(c.selected, true)
	c.layer.SyncArrows(c.store)
}

func (c *Controller) placeArrow(to symbol.Vec2) {
	u, ok := c.store.Unit(c.selected)
	if !ok {
		c.fire(evArrowCancel)
		return
	}
	if _, err := c.store.AddArrow(u.ID, to, symbol.AffiliationColor(u.Affiliation)); err != nil {
		c.log.Warn().Err(err).Str("unit", u.ID).Msg("arrow rejected")
		c.fire(evArrowCancel)
		return
	}
	c.layer.SyncArrows(c.store)
	c.actions.Add(c.frame, u.ID, "arrow", "place", fmtVec(to))
	c.fire(evArrowPlace)
}

// AddUnit creates a friendly land unit at pos and selects it.
func (c *Controller) AddUnit(pos symbol.Vec2) string {
	id, err := c.store.AddUnit(store.Unit{
		Pos:         pos,
		Frame:       symbol.FrameLand,
		Affiliation: symbol.Friendly,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("add unit failed")
		return ""
	}
	u, _ := c.store.Unit(id)
	c.layer.Rebind(u, false, c.layer.Ortho())
	c.actions.Add(c.frame, id, "unit", "add", fmtVec(pos))
	c.selectUnit(id)
	return id
}

// CommitForm writes the pending edits, re-binds the unit and clears the selection.
func (c *Controller) CommitForm() {
	c.release()
}

// Deselect commits pending edits and clears the selection.
func (c *Controller) Deselect() {
	c.release()
}

// BeginArrow commits pending edits and waits for the arrow target.
func (c *Controller) BeginArrow() {
	if c.State() != StateUnitSelected {
		return
	}
	c.commit()
	c.rebind(c.selected, true)
	c.fire(evArrowBegin)
}

// CancelArrow leaves arrow mode without creating an arrow.
func (c *Controller) CancelArrow() {
	if c.State() != StateAwaitingArrow {
		return
	}
	c.actions.Add(c.frame, c.selected, "arrow", "cancel", "")
	c.fire(evArrowCancel)
}

// DeleteSelected removes the selected unit and its arrows. Pending edits are dropped.
func (c *Controller) DeleteSelected() {
	if c.selected == "" {
		return
	}
	id := c.selected
	removed, _ := c.store.DeleteUnit(id)
	c.layer.Remove(id)
	c.layer.SyncArrows(c.store)
	c.selected = ""
	c.form = Form{}
	c.actions.Add(c.frame, id, "unit", "delete", fmt.Sprintf("%d arrows removed", removed))
	c.fire(evDeselect)
}

// DeleteArrowsFromSelected removes every arrow whose origin is the selected unit.
func (c *Controller) DeleteArrowsFromSelected() {
	if c.selected == "" {
		return
	}
	n := c.store.DeleteArrowsFrom(c.selected)
	c.layer.SyncArrows(c.store)
	c.actions.Add(c.frame, c.selected, "arrow", "delete_all", fmt.Sprintf("%d removed", n))
}

// CycleFrame advances the pending frame type.
func (c *Controller) CycleFrame() {
	if c.selected == "" {
		return
	}
	c.form.Frame = c.form.Frame.Next()
}

// CycleAffiliation advances the pending affiliation.
func (c *Controller) CycleAffiliation() {
	if c.selected == "" {
		return
	}
	c.form.Affiliation = c.form.Affiliation.Next()
}

// Reset drops the selection and rebuilds every visual from the store. Call it
// after the store has been replaced wholesale, e.g. by a load.
func (c *Controller) Reset(ortho float64) {
	c.selected = ""
	c.form = Form{}
	c.machine.SetState(string(StateIdle))
	c.layer.Sync(c.store, "", ortho)
	units, arrows := c.store.Len()
	c.actions.Add(c.frame, "", "file", "reset", fmt.Sprintf("%d units, %d arrows", units, arrows))
}

func fmtVec(v symbol.Vec2) string {
	return fmt.Sprintf("(%.1f,%.1f)", v.X, v.Y)
}
