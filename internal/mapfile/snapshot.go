package mapfile

import (
	"github.com/rotisserie/eris"

	"github.com/Garsondee/Symbol-Sense/internal/store"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

// Snapshot captures the store as a document. Units and arrows keep store order.
func Snapshot(s *store.Store, background string) Document {
	units := s.Units()
	arrows := s.Arrows()
	doc := Document{
		Units:                  make([]UnitRecord, 0, len(units)),
		Arrows:                 make([]ArrowRecord, 0, len(arrows)),
		BackgroundRelativePath: background,
	}
	for _, u := range units {
		doc.Units = append(doc.Units, UnitRecord{
			ID:          u.ID,
			WorldPos:    u.Pos,
			FrameType:   u.Frame.String(),
			NationTop:   u.Top,
			UnitCode:    u.Center,
			LabelBottom: u.Bottom,
			Affiliation: int(u.Affiliation),
			Importance:  u.Importance,
		})
	}
	for _, a := range arrows {
		c := a.Color
		doc.Arrows = append(doc.Arrows, ArrowRecord{
			FromUnitID: a.OriginID,
			From:       a.From,
			To:         a.To,
			Color:      &c,
		})
	}
	return doc
}

// Restore validates doc and replaces the store's contents with it. On error the
// store is untouched. It returns how many arrows reference a missing unit.
func Restore(doc Document, s *store.Store) (int, error) {
	units, arrows, err := doc.entities()
	if err != nil {
		return 0, err
	}
	dangling, err := s.Replace(units, arrows)
	if err != nil {
		return 0, eris.Wrapf(ErrMalformedDocument, "restore: %v", err)
	}
	return dangling, nil
}

func (d Document) entities() ([]store.Unit, []store.Arrow, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	units := make([]store.Unit, 0, len(d.Units))
	affiliation := make(map[string]symbol.Affiliation, len(d.Units))
	for _, r := range d.Units {
		ft, _ := symbol.ParseFrameType(r.FrameType)
		aff := symbol.Affiliation(r.Affiliation)
		affiliation[r.ID] = aff
		units = append(units, store.Unit{
			ID:          r.ID,
			Pos:         r.WorldPos,
			Frame:       ft,
			Affiliation: aff,
			Top:         r.NationTop,
			Center:      r.UnitCode,
			Bottom:      r.LabelBottom,
			Importance:  r.Importance,
		})
	}

	arrows := make([]store.Arrow, 0, len(d.Arrows))
	for _, r := range d.Arrows {
		c := symbol.White
		if r.Color != nil {
			c = *r.Color
		} else if aff, ok := affiliation[r.FromUnitID]; ok {
			c = symbol.AffiliationColor(aff)
		}
		arrows = append(arrows, store.Arrow{
			OriginID: r.FromUnitID,
			From:     r.From,
			To:       r.To,
			Color:    c,
		})
	}
	return units, arrows, nil
}
