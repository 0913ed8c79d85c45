package editor

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestActionLog_FilterAndLimit(t *testing.T) {
	al := NewActionLog(3)
	al.Add(1, "u1", "unit", "select", "A")
	al.Add(2, "", "menu", "toggle", "visible=true")
	al.Add(3, "u1", "arrow", "place", "(1.0,2.0)")
	al.Add(4, "u2", "unit", "select", "B")

	if n := len(al.Entries()); n != 3 {
		t.Fatalf("limit not applied, have %d entries", n)
	}
	if al.Entries()[0].Frame != 2 {
		t.Fatalf("oldest entry should be dropped first")
	}
	if al.Entries()[0].Unit != "--" {
		t.Fatalf("empty unit should be stored as --")
	}
	if got := al.Count("unit", "select"); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
	if !al.HasEntry("arrow", "", "2.0") {
		t.Fatalf("HasEntry missed value substring")
	}
	if e, ok := al.LastOf("unit", ""); !ok || e.Unit != "u2" {
		t.Fatalf("LastOf = %+v,%v", e, ok)
	}
	if got := al.FilterUnit("u1"); len(got) != 1 {
		t.Fatalf("FilterUnit = %d entries", len(got))
	}
	if tail := al.Tail(2); len(tail) != 2 || tail[1].Frame != 4 {
		t.Fatalf("Tail = %+v", tail)
	}
	if !strings.Contains(al.Format(), "[F=0004]") {
		t.Fatalf("Format missing frame stamp:\n%s", al.Format())
	}
}

func TestActionEntry_ShortensLongIDs(t *testing.T) {
	e := ActionEntry{Frame: 1, Unit: "0123456789abcdef", Category: "unit", Key: "add"}
	if !strings.Contains(e.String(), "0123456…") {
		t.Fatalf("long id not shortened: %s", e.String())
	}
}

func TestActionLog_TailNonPositive(t *testing.T) {
	al := NewActionLog(0)
	al.Add(1, "u1", "unit", "select", "")
	if got := al.Tail(0); got != nil {
		t.Fatalf("Tail(0) = %+v, want nil", got)
	}
	if got := al.Tail(-3); got != nil {
		t.Fatalf("Tail(-3) = %+v, want nil", got)
	}
}

func TestActionEntry_ShortensMultibyteIDsOnRunes(t *testing.T) {
	e := ActionEntry{Frame: 1, Unit: "ÄÖÜäöüßéè", Category: "unit", Key: "add"}
	s := e.String()
	if !utf8.ValidString(s) {
		t.Fatalf("shortened id is not valid UTF-8: %q", s)
	}
	if !strings.Contains(s, "ÄÖÜäöüß…") {
		t.Fatalf("multibyte id not shortened to 7 runes: %s", s)
	}
}
