package editor

import (
	"github.com/Garsondee/Symbol-Sense/internal/store"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

// FormField identifies an editable text field of the form.
type FormField int

const (
	FieldTop FormField = iota
	FieldCenter
	FieldBottom
	fieldCount
)

func (f FormField) String() string {
	switch f {
	case FieldTop:
		return "nation/top"
	case FieldCenter:
		return "unit code"
	case FieldBottom:
		return "bottom"
	}
	return "?"
}

// Form holds the pending edits for the selected unit. Nothing reaches the
// store until the form is committed.
type Form struct {
	Frame       symbol.FrameType
	Affiliation symbol.Affiliation
	Top         string
	Center      string
	Bottom      string
	Importance  uint8

	Focus FormField
}

func formFrom(u store.Unit) Form {
	return Form{
		Frame:       u.Frame,
		Affiliation: u.Affiliation,
		Top:         u.Top,
		Center:      u.Center,
		Bottom:      u.Bottom,
		Importance:  u.Importance,
	}
}

func (f *Form) apply(u *store.Unit) {
	u.Frame = f.Frame
	u.Affiliation = f.Affiliation
	u.Top = f.Top
	u.Center = f.Center
	u.Bottom = f.Bottom
	u.Importance = f.Importance
}

// Field returns a pointer to the text of the given field.
func (f *Form) Field(ff FormField) *string {
	switch ff {
	case FieldTop:
		return &f.Top
	case FieldCenter:
		return &f.Center
	default:
		return &f.Bottom
	}
}

// NextFocus moves focus to the following text field, wrapping.
func (f *Form) NextFocus() {
	f.Focus = (f.Focus + 1) % fieldCount
}

// Type appends runes to the focused field.
func (f *Form) Type(rs []rune) {
	if len(rs) == 0 {
		return
	}
	p := f.Field(f.Focus)
	*p += string(rs)
}

// Backspace removes the last rune of the focused field.
func (f *Form) Backspace() {
	p := f.Field(f.Focus)
	rs := []rune(*p)
	if len(rs) == 0 {
		return
	}
	*p = string(rs[:len(rs)-1])
}
