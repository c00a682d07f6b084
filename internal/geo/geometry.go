// Package geo handles delivery zone geometry: well-known-text parsing,
// edge-inclusive point containment and area centroids.
package geo

import "math"

// Point is a WGS84 position in (Lon, Lat) order, matching WKT vertex order.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Rect is an axis-aligned bounding box in the same coordinate plane.
type Rect struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// expand grows the box to cover p.
func (r *Rect) expand(p Point) {
	if p.Lon < r.MinLon {
		r.MinLon = p.Lon
	}
	if p.Lon > r.MaxLon {
		r.MaxLon = p.Lon
	}
	if p.Lat < r.MinLat {
		r.MinLat = p.Lat
	}
	if p.Lat > r.MaxLat {
		r.MaxLat = p.Lat
	}
}

// Ring is a closed linear ring; the last vertex repeats the first.
type Ring []Point

// contains runs the even-odd ray crossing test against the ring interior.
// Points exactly on the boundary are not guaranteed a stable answer here,
// callers combine it with onEdge.
func (r Ring) contains(p Point) bool {
	inside := false
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r[i], r[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) &&
			p.Lon < (b.Lon-a.Lon)*(p.Lat-a.Lat)/(b.Lat-a.Lat)+a.Lon {
			inside = !inside
		}
	}

	return inside
}

// onEdge reports whether p lies exactly on one of the ring's segments.
func (r Ring) onEdge(p Point) bool {
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if onSegment(r[j], r[i], p) {
			return true
		}
	}

	return false
}

// onSegment reports whether p lies on the segment from a to b.
func onSegment(a, b, p Point) bool {
	cross := (b.Lon-a.Lon)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lon-a.Lon)
	if cross != 0 {
		return false
	}

	return math.Min(a.Lon, b.Lon) <= p.Lon && p.Lon <= math.Max(a.Lon, b.Lon) &&
		math.Min(a.Lat, b.Lat) <= p.Lat && p.Lat <= math.Max(a.Lat, b.Lat)
}

// areaCentroid returns the signed shoelace area of the ring and its
// area centroid. A degenerate ring reports area 0 and the zero point.
func (r Ring) areaCentroid() (float64, Point) {
	var area float64
	var c Point

	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		cross := r[j].Lon*r[i].Lat - r[i].Lon*r[j].Lat
		area += cross
		c.Lon += (r[j].Lon + r[i].Lon) * cross
		c.Lat += (r[j].Lat + r[i].Lat) * cross
	}

	area /= 2
	if area != 0 {
		c.Lon /= 6 * area
		c.Lat /= 6 * area
	}

	return area, c
}

// Polygon is a single outer ring with optional interior holes.
// Rings[0] is the exterior, every following ring cuts a hole out of it.
type Polygon struct {
	Rings []Ring
}

// Contains reports whether p lies inside the polygon or on any of its
// rings. Hole boundaries count as contained, hole interiors do not.
func (poly Polygon) Contains(p Point) bool {
	if len(poly.Rings) == 0 {
		return false
	}

	for _, ring := range poly.Rings {
		if ring.onEdge(p) {
			return true
		}
	}

	if !poly.Rings[0].contains(p) {
		return false
	}
	for _, hole := range poly.Rings[1:] {
		if hole.contains(p) {
			return false
		}
	}

	return true
}

// areaCentroid returns the polygon net area (exterior minus holes) and
// the area-weighted centroid of that surface.
func (poly Polygon) areaCentroid() (float64, Point) {
	var net float64
	var c Point

	for i, ring := range poly.Rings {
		area, rc := ring.areaCentroid()
		area = math.Abs(area)
		if i > 0 {
			area = -area // holes subtract
		}
		net += area
		c.Lon += rc.Lon * area
		c.Lat += rc.Lat * area
	}

	if net != 0 {
		c.Lon /= net
		c.Lat /= net
	}

	return net, c
}

// Geometry is a parsed zone boundary: one or more polygons. A geometry
// with no polygons (parsed from an EMPTY body) never contains a point.
type Geometry struct {
	Polygons []Polygon
}

// Empty reports whether the geometry has no surface at all.
func (g Geometry) Empty() bool {
	for _, poly := range g.Polygons {
		if len(poly.Rings) > 0 {
			return false
		}
	}

	return true
}

// Contains reports whether p lies inside or on the boundary of any
// member polygon.
func (g Geometry) Contains(p Point) bool {
	for _, poly := range g.Polygons {
		if poly.Contains(p) {
			return true
		}
	}

	return false
}

// Centroid returns the area centroid of the geometry, each polygon
// weighted by its net area. Degenerate geometry with no measurable area
// falls back to the mean of all ring vertices; an empty geometry yields
// the zero point.
func (g Geometry) Centroid() Point {
	var total float64
	var c Point

	for _, poly := range g.Polygons {
		area, pc := poly.areaCentroid()
		total += area
		c.Lon += pc.Lon * area
		c.Lat += pc.Lat * area
	}

	if total != 0 {
		c.Lon /= total
		c.Lat /= total
		return c
	}

	return g.vertexMean()
}

// vertexMean averages every ring vertex, skipping each ring's closing
// duplicate.
func (g Geometry) vertexMean() Point {
	var sum Point
	count := 0

	for _, poly := range g.Polygons {
		for _, ring := range poly.Rings {
			n := len(ring)
			if n > 1 && ring[0] == ring[n-1] {
				n--
			}
			for _, p := range ring[:n] {
				sum.Lon += p.Lon
				sum.Lat += p.Lat
				count++
			}
		}
	}

	if count == 0 {
		return Point{}
	}

	return Point{Lon: sum.Lon / float64(count), Lat: sum.Lat / float64(count)}
}

// Bounds returns the bounding box over every ring vertex. The zero Rect
// is returned for an empty geometry.
func (g Geometry) Bounds() Rect {
	first := true
	var b Rect

	for _, poly := range g.Polygons {
		for _, ring := range poly.Rings {
			for _, p := range ring {
				if first {
					b = Rect{MinLon: p.Lon, MinLat: p.Lat, MaxLon: p.Lon, MaxLat: p.Lat}
					first = false
					continue
				}
				b.expand(p)
			}
		}
	}

	return b
}
