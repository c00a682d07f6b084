package geo

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties"`
	Type       string                 `json:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature. Every zone is
// emitted as a MultiPolygon so single and multi part boundaries share
// one coordinate layout.
type GeoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates [][][][]float64 `json:"coordinates"` // polygons -> rings -> [Lon, Lat]
}

// GeoJSON converts the geometry to its GeoJSON representation.
func (g Geometry) GeoJSON() GeoJSONGeometry {
	coords := make([][][][]float64, 0, len(g.Polygons))
	for _, poly := range g.Polygons {
		rings := make([][][]float64, 0, len(poly.Rings))
		for _, ring := range poly.Rings {
			points := make([][]float64, 0, len(ring))
			for _, p := range ring {
				points = append(points, []float64{p.Lon, p.Lat})
			}
			rings = append(rings, points)
		}
		coords = append(coords, rings)
	}

	return GeoJSONGeometry{Type: "MultiPolygon", Coordinates: coords}
}
