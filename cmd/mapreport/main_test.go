package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Garsondee/Symbol-Sense/internal/mapfile"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

func sampleDoc() mapfile.Document {
	return mapfile.Document{
		Units: []mapfile.UnitRecord{
			{ID: "a", WorldPos: symbol.V(-2, 1), FrameType: "LAND", Affiliation: int(symbol.Friendly)},
			{ID: "b", WorldPos: symbol.V(4, -3), FrameType: "air", Affiliation: int(symbol.Hostile)},
			{ID: "c", WorldPos: symbol.V(0, 0), FrameType: "LAND", Affiliation: int(symbol.Hostile)},
		},
		Arrows: []mapfile.ArrowRecord{
			{FromUnitID: "a", From: symbol.V(-2, 1), To: symbol.V(3, 5)},
			{FromUnitID: "a", From: symbol.V(-2, 1), To: symbol.V(1, 1)},
			{FromUnitID: "ghost", From: symbol.V(-6, 0), To: symbol.V(0, 0)},
		},
	}
}

func TestSummarize_Counts(t *testing.T) {
	st := summarize(sampleDoc())
	if st.units != 3 || st.arrows != 3 {
		t.Fatalf("expected units=3 arrows=3, got units=%d arrows=%d", st.units, st.arrows)
	}
	if st.byFrame["land"] != 2 || st.byFrame["air"] != 1 {
		t.Fatalf("unexpected frame counts: %v", st.byFrame)
	}
	if st.byAffiliation["hostile"] != 2 || st.byAffiliation["friendly"] != 1 {
		t.Fatalf("unexpected affiliation counts: %v", st.byAffiliation)
	}
	if st.perOrigin["a"] != 2 {
		t.Fatalf("expected 2 arrows from a, got %d", st.perOrigin["a"])
	}
	if len(st.dangling) != 1 || st.dangling[0] != "ghost" {
		t.Fatalf("expected one dangling arrow from ghost, got %v", st.dangling)
	}
}

func TestSummarize_BoundsIncludeArrowEndpoints(t *testing.T) {
	st := summarize(sampleDoc())
	if !st.hasBounds {
		t.Fatal("expected bounds")
	}
	if st.min != symbol.V(-6, -3) || st.max != symbol.V(4, 5) {
		t.Fatalf("unexpected bounds %v-%v", st.min, st.max)
	}
}

func TestPrintStats_EmptyMap(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, summarize(mapfile.Document{}))
	out := buf.String()
	if !strings.Contains(out, "units=0 arrows=0") {
		t.Fatalf("missing totals line:\n%s", out)
	}
	if !strings.Contains(out, "bounds:         -") {
		t.Fatalf("empty map should have no bounds:\n%s", out)
	}
}

func TestFormatCounts_Sorted(t *testing.T) {
	got := formatCounts(map[string]int{"sea": 1, "air": 2, "land": 3})
	if got != "air=2 land=3 sea=1" {
		t.Fatalf("formatCounts = %q", got)
	}
}
