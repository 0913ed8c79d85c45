package symbol

import (
	"fmt"
	"strings"
)

// FrameType selects the outline family of a unit symbol, encoding its domain.
type FrameType int

const (
	FrameLand FrameType = iota // rectangle
	FrameSea                   // circle
	FrameSub                   // U, open at the top
	FrameAir                   // ∩, open at the bottom
	frameTypeCount
)

// FrameTypes lists every frame type in cycle order.
var FrameTypes = [frameTypeCount]FrameType{FrameLand, FrameSea, FrameSub, FrameAir}

var frameTypeNames = [frameTypeCount]string{
	FrameLand: "LAND",
	FrameSea:  "SEA",
	FrameSub:  "SUB",
	FrameAir:  "AIR",
}

func (f FrameType) String() string {
	if f < 0 || f >= frameTypeCount {
		return fmt.Sprintf("FrameType(%d)", int(f))
	}
	return frameTypeNames[f]
}

// Valid reports whether f is one of the four built-in frame types.
func (f FrameType) Valid() bool { return f >= 0 && f < frameTypeCount }

// Next returns the following frame type, wrapping after Air.
func (f FrameType) Next() FrameType {
	if !f.Valid() {
		return FrameLand
	}
	return (f + 1) % frameTypeCount
}

// ParseFrameType maps a save-file tag ("LAND", "SEA", "SUB", "AIR") to a FrameType.
// Matching is case-insensitive.
func ParseFrameType(s string) (FrameType, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range frameTypeNames {
		if name == up {
			return FrameType(i), nil
		}
	}
	return FrameLand, fmt.Errorf("unknown frame type %q", s)
}

// Affiliation is the friend/hostile/neutral classification of a unit.
// The integer values are part of the save format.
type Affiliation int

const (
	Friendly Affiliation = iota
	Hostile
	Neutral
	affiliationCount
)

func (a Affiliation) String() string {
	switch a {
	case Friendly:
		return "friendly"
	case Hostile:
		return "hostile"
	case Neutral:
		return "neutral"
	}
	return fmt.Sprintf("Affiliation(%d)", int(a))
}

// Valid reports whether a is a known affiliation.
func (a Affiliation) Valid() bool { return a >= 0 && a < affiliationCount }

// Next returns the following affiliation, wrapping after Neutral.
func (a Affiliation) Next() Affiliation {
	if !a.Valid() {
		return Friendly
	}
	return (a + 1) % affiliationCount
}
