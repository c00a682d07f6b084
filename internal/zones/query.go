package zones

import (
	"sort"
	"time"

	"github.com/rtefood/geozones/internal/geo"
	"github.com/rtefood/geozones/internal/metrics"

	"github.com/dhconnelly/rtreego"
)

// PointInZones returns every zone containing the point, ordered the way
// their rows appeared in the source. Points exactly on a zone edge
// count as contained. Arguments follow the geographic (lat, lon)
// convention; internally vertices are (lon, lat).
func (s *Store) PointInZones(lat, lon float64) ([]*Record, error) {
	if len(s.records) == 0 {
		return nil, &DataSourceError{Path: s.source, Err: ErrNoZones}
	}

	start := time.Now()
	metrics.ContainmentQueriesTotal.Inc()

	p := geo.Point{Lon: lon, Lat: lat}
	var matches []*Record
	for _, spatial := range s.index.SearchIntersect(rtreego.Point{lon, lat}.ToRect(1e-9)) {
		entry := spatial.(*indexEntry)
		if entry.rec.Geometry.Contains(p) {
			matches = append(matches, entry.rec)
		}
	}

	// The index returns candidates in tree order, queries promise
	// source order.
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	if len(matches) == 0 {
		metrics.ContainmentMissesTotal.Inc()
	}
	metrics.QueryDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)

	return matches, nil
}

// InAnyZone reports whether at least one zone covers the point.
func (s *Store) InAnyZone(lat, lon float64) (bool, error) {
	zs, err := s.PointInZones(lat, lon)
	if err != nil {
		return false, err
	}

	return len(zs) > 0, nil
}
