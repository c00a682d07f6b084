package zones

import (
	"github.com/rtefood/geozones/internal/geo"
	"github.com/rtefood/geozones/internal/table"
)

// GeoJSON renders the validated zones as a feature collection, one
// feature per zone with its attributes as properties. Zones without
// usable geometry come out with an empty MultiPolygon.
func (s *Store) GeoJSON() geo.GeoJSONFeatureCollection {
	fc := geo.GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]geo.GeoJSONFeature, 0, len(s.records)),
	}

	for _, rec := range s.records {
		props := make(map[string]interface{}, rec.Attrs.Len()+1)
		props["id"] = rec.ID
		for _, name := range rec.Attrs.Names() {
			v, _ := rec.Attrs.Get(name)
			switch {
			case v.IsEmpty():
				props[name] = nil
			case v.Kind == table.KindNumber:
				props[name] = v.Num
			default:
				props[name] = v.Str
			}
		}

		fc.Features = append(fc.Features, geo.GeoJSONFeature{
			Type:       "Feature",
			Properties: props,
			Geometry:   rec.Geometry.GeoJSON(),
		})
	}

	return fc
}
