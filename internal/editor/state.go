package editor

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// State is an interaction mode of the editor.
type State string

const (
	StateIdle          State = "idle"
	StateUnitSelected  State = "unit_selected"
	StateDraggingUnit  State = "dragging_unit"
	StateAwaitingArrow State = "awaiting_arrow_target"
)

// Interaction events.
const (
	evSelect      = "select"
	evDragStart   = "drag_start"
	evDragEnd     = "drag_end"
	evArrowBegin  = "arrow_begin"
	evArrowPlace  = "arrow_place"
	evArrowCancel = "arrow_cancel"
	evDeselect    = "deselect"
)

func newMachine(onTransition func(from, to, event string)) *fsm.FSM {
	return fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: evSelect, Src: []string{string(StateIdle), string(StateUnitSelected)}, Dst: string(StateUnitSelected)},
			{Name: evDragStart, Src: []string{string(StateUnitSelected)}, Dst: string(StateDraggingUnit)},
			{Name: evDragEnd, Src: []string{string(StateDraggingUnit)}, Dst: string(StateUnitSelected)},
			{Name: evArrowBegin, Src: []string{string(StateUnitSelected)}, Dst: string(StateAwaitingArrow)},
			{Name: evArrowPlace, Src: []string{string(StateAwaitingArrow)}, Dst: string(StateUnitSelected)},
			{Name: evArrowCancel, Src: []string{string(StateAwaitingArrow)}, Dst: string(StateUnitSelected)},
			{Name: evDeselect, Src: []string{string(StateUnitSelected), string(StateDraggingUnit), string(StateAwaitingArrow)}, Dst: string(StateIdle)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				onTransition(e.Src, e.Dst, e.Event)
			},
		},
	)
}

// fire runs event on the machine. Self-transitions are expected (reselecting
// while selected) and are not errors. Events the current state does not
// accept are silent no-ops.
func (c *Controller) fire(event string) {
	err := c.machine.Event(context.Background(), event)
	if err == nil {
		return
	}
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return
	}
	c.log.Debug().Err(err).Str("event", event).Str("state", c.machine.Current()).Msg("event ignored")
}

// State returns the current interaction state.
func (c *Controller) State() State { return State(c.machine.Current()) }
