package editor

import (
	"fmt"
	"strings"
)

// ActionEntry is one recorded editor action.
type ActionEntry struct {
	Frame    int
	Unit     string // unit id, or "--" for global events
	Category string // state, unit, arrow, form, file, menu
	Key      string // specific event name within the category
	Value    string // human-readable detail
}

// String formats the entry as a fixed-width log line.
//
//	[F=0042] 3f2a…   arrow    place            (4.0,2.5)
func (e ActionEntry) String() string {
	return fmt.Sprintf("[F=%04d] %-8s %-8s %-16s %s",
		e.Frame, shortID(e.Unit), e.Category, e.Key, e.Value)
}

func shortID(id string) string {
	rs := []rune(id)
	if len(rs) <= 8 {
		return id
	}
	return string(rs[:7]) + "…"
}

// ActionLog collects structured editor events. It backs both the on-screen
// log panel and test assertions.
type ActionLog struct {
	entries []ActionEntry
	limit   int
}

// NewActionLog creates an ActionLog keeping at most limit entries; 0 keeps all.
func NewActionLog(limit int) *ActionLog {
	return &ActionLog{limit: limit}
}

// Add records a new entry. An empty unit id is stored as "--".
func (al *ActionLog) Add(frame int, unit, category, key, value string) {
	if unit == "" {
		unit = "--"
	}
	al.entries = append(al.entries, ActionEntry{
		Frame:    frame,
		Unit:     unit,
		Category: category,
		Key:      key,
		Value:    value,
	})
	if al.limit > 0 && len(al.entries) > al.limit {
		al.entries = append(al.entries[:0], al.entries[len(al.entries)-al.limit:]...)
	}
}

// Entries returns all recorded entries.
func (al *ActionLog) Entries() []ActionEntry {
	return al.entries
}

// Tail returns the last n entries, oldest first. n <= 0 yields nil.
func (al *ActionLog) Tail(n int) []ActionEntry {
	if n <= 0 {
		return nil
	}
	if n >= len(al.entries) {
		return al.entries
	}
	return al.entries[len(al.entries)-n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (al *ActionLog) Filter(category, key string) []ActionEntry {
	var out []ActionEntry
	for _, e := range al.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterUnit returns entries for a specific unit id.
func (al *ActionLog) FilterUnit(id string) []ActionEntry {
	var out []ActionEntry
	for _, e := range al.entries {
		if e.Unit == id {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given category and key.
func (al *ActionLog) Count(category, key string) int {
	return len(al.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (al *ActionLog) LastOf(category, key string) (ActionEntry, bool) {
	entries := al.Filter(category, key)
	if len(entries) == 0 {
		return ActionEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (al *ActionLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range al.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (al *ActionLog) Format() string {
	var sb strings.Builder
	for _, e := range al.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
