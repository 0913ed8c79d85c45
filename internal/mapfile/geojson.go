package mapfile

import (
	"github.com/goccy/go-json"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/rotisserie/eris"

	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

// GeoJSON builds a feature collection with one Point per unit and one
// LineString per arrow. Coordinates are raw world units. An arrow whose
// endpoints coincide collapses to a Point at its origin.
func GeoJSON(doc Document) (geom.GeoJSONFeatureCollection, error) {
	fc := make(geom.GeoJSONFeatureCollection, 0, len(doc.Units)+len(doc.Arrows))
	for _, u := range doc.Units {
		pt, err := geom.XY{X: u.WorldPos.X, Y: u.WorldPos.Y}.AsPoint()
		if err != nil {
			return nil, eris.Wrapf(err, "unit %q", u.ID)
		}
		fc = append(fc, geom.GeoJSONFeature{
			Geometry: pt.AsGeometry(),
			ID:       u.ID,
			Properties: map[string]interface{}{
				"kind":        "unit",
				"frameType":   u.FrameType,
				"affiliation": symbol.Affiliation(u.Affiliation).String(),
				"nationTop":   u.NationTop,
				"unitCode":    u.UnitCode,
				"labelBottom": u.LabelBottom,
				"importance":  u.Importance,
			},
		})
	}
	for i, a := range doc.Arrows {
		g, err := arrowGeometry(a)
		if err != nil {
			return nil, eris.Wrapf(err, "arrow %d from %q", i, a.FromUnitID)
		}
		fc = append(fc, geom.GeoJSONFeature{
			Geometry: g,
			Properties: map[string]interface{}{
				"kind":       "arrow",
				"fromUnitId": a.FromUnitID,
			},
		})
	}
	return fc, nil
}

func arrowGeometry(a ArrowRecord) (geom.Geometry, error) {
	if a.From.Equal(a.To) {
		pt, err := geom.XY{X: a.From.X, Y: a.From.Y}.AsPoint()
		if err != nil {
			return geom.Geometry{}, err
		}
		return pt.AsGeometry(), nil
	}
	seq := geom.NewSequence([]float64{a.From.X, a.From.Y, a.To.X, a.To.Y}, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.Geometry{}, err
	}
	return ls.AsGeometry(), nil
}

// ExportGeoJSON renders GeoJSON(doc) as indented JSON.
func ExportGeoJSON(doc Document) ([]byte, error) {
	fc, err := GeoJSON(doc)
	if err != nil {
		return nil, eris.Wrap(err, "build geojson")
	}
	bz, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "encode geojson")
	}
	return bz, nil
}
