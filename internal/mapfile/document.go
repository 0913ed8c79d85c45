// Package mapfile reads and writes map documents: the human-diffable JSON
// save format holding every unit, arrow and the optional background path.
package mapfile

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

var (
	// ErrMalformedDocument is returned when a document fails to parse or validate.
	ErrMalformedDocument = eris.New("malformed map document")
	// ErrIOFailure is returned when a map file cannot be read or written.
	ErrIOFailure = eris.New("map file io failure")
)

// Document is the on-disk map.
type Document struct {
	Units                  []UnitRecord  `json:"units"`
	Arrows                 []ArrowRecord `json:"arrows"`
	BackgroundRelativePath string        `json:"backgroundRelativePath,omitempty"`
}

// UnitRecord is one saved unit.
type UnitRecord struct {
	ID          string      `json:"id"`
	WorldPos    symbol.Vec2 `json:"worldPos"`
	FrameType   string      `json:"frameType"`
	NationTop   string      `json:"nationTop"`
	UnitCode    string      `json:"unitCode"`
	LabelBottom string      `json:"labelBottom"`
	Affiliation int         `json:"affiliation"`
	Importance  uint8       `json:"importance,omitempty"`
}

// ArrowRecord is one saved arrow. A nil Color is resolved on restore.
type ArrowRecord struct {
	FromUnitID string        `json:"fromUnitId"`
	From       symbol.Vec2   `json:"from"`
	To         symbol.Vec2   `json:"to"`
	Color      *symbol.Color `json:"color,omitempty"`
}

// Encode renders doc as indented JSON with a trailing newline.
func Encode(doc Document) ([]byte, error) {
	if doc.Units == nil {
		doc.Units = []UnitRecord{}
	}
	if doc.Arrows == nil {
		doc.Arrows = []ArrowRecord{}
	}
	bz, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "encode map document")
	}
	return append(bz, '\n'), nil
}

// Decode parses and validates a document.
func Decode(bz []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(bz, &doc); err != nil {
		return Document{}, eris.Wrapf(ErrMalformedDocument, "parse: %v", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks frame types, affiliations and unit ids.
func (d Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Units))
	for i, u := range d.Units {
		if u.ID == "" {
			return eris.Wrapf(ErrMalformedDocument, "unit %d has no id", i)
		}
		if _, dup := seen[u.ID]; dup {
			return eris.Wrapf(ErrMalformedDocument, "duplicate unit id %q", u.ID)
		}
		seen[u.ID] = struct{}{}
		if _, err := symbol.ParseFrameType(u.FrameType); err != nil {
			return eris.Wrapf(ErrMalformedDocument, "unit %q: %v", u.ID, err)
		}
		if !symbol.Affiliation(u.Affiliation).Valid() {
			return eris.Wrapf(ErrMalformedDocument, "unit %q: affiliation %d out of range", u.ID, u.Affiliation)
		}
	}
	return nil
}
