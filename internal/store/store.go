// Package store owns the authoritative unit and arrow collections of a map.
package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

var (
	// ErrInvalidReference is returned when an arrow names an origin unit that does not exist.
	ErrInvalidReference = eris.New("invalid unit reference")
	// ErrUnknownUnit is returned when updating or moving a unit that does not exist.
	ErrUnknownUnit = eris.New("unknown unit")
	// ErrDuplicateUnit is returned when a unit id is already taken.
	ErrDuplicateUnit = eris.New("duplicate unit id")
)

// Unit is a tactical unit marker placed on the map.
type Unit struct {
	ID          string
	Pos         symbol.Vec2
	Frame       symbol.FrameType
	Affiliation symbol.Affiliation
	Top         string // nation / higher formation
	Center      string // unit code
	Bottom      string
	Importance  uint8 // only read by clustering; 0 = unset
}

// ArrowID identifies an arrow within one Store. It is not persisted.
type ArrowID uint64

// Arrow is a directional indicator from an origin unit to a target point.
// OriginID is a weak reference: it may dangle after an out-of-band load.
type Arrow struct {
	ID       ArrowID
	OriginID string
	From     symbol.Vec2 // kept equal to the origin unit's position
	To       symbol.Vec2
	Color    symbol.Color // resolved once at creation
}

// Store holds units by id plus the arrow list. Each exported method is one
// logical operation under a single lock; reads return copies.
type Store struct {
	mu        sync.RWMutex
	units     map[string]*Unit
	order     []string // insertion order, kept for stable enumeration and diffable saves
	arrows    []*Arrow
	nextArrow ArrowID
}

// New returns an empty Store.
func New() *Store {
	return &Store{units: make(map[string]*Unit)}
}

// AddUnit inserts u and returns its id. An empty id is replaced with a fresh UUID.
func (s *Store) AddUnit(u Unit) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if _, ok := s.units[u.ID]; ok {
		return "", eris.Wrapf(ErrDuplicateUnit, "add unit %q", u.ID)
	}
	s.units[u.ID] = &u
	s.order = append(s.order, u.ID)
	return u.ID, nil
}

// DeleteUnit removes a unit and every arrow whose origin it is.
// It returns how many arrows were removed and whether the unit existed.
func (s *Store) DeleteUnit(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[id]; !ok {
		return 0, false
	}
	delete(s.units, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return s.deleteArrowsFromLocked(id), true
}

// UpdateUnit applies fn to the stored unit. The id cannot be changed.
// A position change made by fn is propagated to the unit's arrows.
func (s *Store) UpdateUnit(id string, fn func(*Unit)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	if !ok {
		return eris.Wrapf(ErrUnknownUnit, "update unit %q", id)
	}
	fn(u)
	u.ID = id
	s.syncArrowsLocked(u)
	return nil
}

// MoveUnit sets a unit's position and eagerly moves the start of its arrows.
func (s *Store) MoveUnit(id string, pos symbol.Vec2) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	if !ok {
		return eris.Wrapf(ErrUnknownUnit, "move unit %q", id)
	}
	u.Pos = pos
	s.syncArrowsLocked(u)
	return nil
}

func (s *Store) syncArrowsLocked(u *Unit) {
	for _, a := range s.arrows {
		if a.OriginID == u.ID {
			a.From = u.Pos
		}
	}
}

// Unit returns a copy of the unit with the given id.
func (s *Store) Unit(id string) (Unit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.units[id]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// Units returns all units in insertion order.
func (s *Store) Units() []Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Unit, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.units[id])
	}
	return out
}

// Len returns the number of units and arrows.
func (s *Store) Len() (units, arrows int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.units), len(s.arrows)
}

// AddArrow creates an arrow from the origin unit's current position to `to`.
// The origin must exist; otherwise ErrInvalidReference is returned.
func (s *Store) AddArrow(originID string, to symbol.Vec2, c symbol.Color) (ArrowID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[originID]
	if !ok {
		return 0, eris.Wrapf(ErrInvalidReference, "arrow origin %q", originID)
	}
	s.nextArrow++
	s.arrows = append(s.arrows, &Arrow{
		ID:       s.nextArrow,
		OriginID: originID,
		From:     u.Pos,
		To:       to,
		Color:    c,
	})
	return s.nextArrow, nil
}

// DeleteArrow removes a single arrow.
func (s *Store) DeleteArrow(id ArrowID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.arrows {
		if a.ID == id {
			s.arrows = append(s.arrows[:i], s.arrows[i+1:]...)
			return true
		}
	}
	return false
}

// DeleteArrowsFrom removes every arrow whose origin is originID and returns the count.
func (s *Store) DeleteArrowsFrom(originID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteArrowsFromLocked(originID)
}

func (s *Store) deleteArrowsFromLocked(originID string) int {
	kept := s.arrows[:0]
	removed := 0
	for _, a := range s.arrows {
		if a.OriginID == originID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	// Drop references held past the new length.
	for i := len(kept); i < len(s.arrows); i++ {
		s.arrows[i] = nil
	}
	s.arrows = kept
	return removed
}

// Arrows returns all arrows in creation order.
func (s *Store) Arrows() []Arrow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Arrow, 0, len(s.arrows))
	for _, a := range s.arrows {
		out = append(out, *a)
	}
	return out
}

// ArrowsFrom returns the arrows whose origin is originID.
func (s *Store) ArrowsFrom(originID string) []Arrow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Arrow
	for _, a := range s.arrows {
		if a.OriginID == originID {
			out = append(out, *a)
		}
	}
	return out
}

// Replace discards all current state and installs units and arrows, as a load does.
// Arrows may reference units that are absent; they are kept as inert and counted
// in the returned dangling total. Arrow ids are reassigned. On error (empty or
// duplicate unit id) the store is left untouched.
func (s *Store) Replace(units []Unit, arrows []Arrow) (dangling int, err error) {
	byID := make(map[string]*Unit, len(units))
	order := make([]string, 0, len(units))
	for i := range units {
		u := units[i]
		if u.ID == "" {
			return 0, eris.Wrapf(ErrUnknownUnit, "unit %d has no id", i)
		}
		if _, dup := byID[u.ID]; dup {
			return 0, eris.Wrapf(ErrDuplicateUnit, "replace: unit %q", u.ID)
		}
		byID[u.ID] = &u
		order = append(order, u.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.units = byID
	s.order = order
	s.arrows = make([]*Arrow, 0, len(arrows))
	s.nextArrow = 0
	for _, a := range arrows {
		s.nextArrow++
		a.ID = s.nextArrow
		if origin, ok := byID[a.OriginID]; ok {
			a.From = origin.Pos
		} else {
			dangling++
		}
		s.arrows = append(s.arrows, &a)
	}
	return dangling, nil
}
