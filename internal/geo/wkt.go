package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports boundary text that is not valid well-known text.
type ParseError struct {
	Msg    string
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid wkt at offset %d: %s", e.Offset, e.Msg)
}

// ParseWKT parses POLYGON and MULTIPOLYGON well-known text into a
// Geometry. Tags are case-insensitive, optional Z/M ordinates are read
// and discarded, and an EMPTY body yields a geometry with no polygons.
// Every ring must be closed and carry at least 4 points.
func ParseWKT(src string) (Geometry, error) {
	s := &wktScanner{src: src}

	s.skipSpace()
	start := s.pos
	tag := strings.ToUpper(s.word())

	multi := false
	switch tag {
	case "POLYGON":
	case "MULTIPOLYGON":
		multi = true
	case "":
		return Geometry{}, s.errAt(start, "missing geometry tag")
	default:
		return Geometry{}, s.errAt(start, fmt.Sprintf("unsupported geometry %q", tag))
	}

	// Optional dimension marker between the tag and the body.
	s.skipSpace()
	mark := s.pos
	word := strings.ToUpper(s.word())
	if word == "Z" || word == "M" || word == "ZM" {
		s.skipSpace()
		mark = s.pos
		word = strings.ToUpper(s.word())
	}

	if word == "EMPTY" {
		s.skipSpace()
		if !s.eof() {
			return Geometry{}, s.errAt(s.pos, "trailing data after geometry")
		}
		return Geometry{}, nil
	}
	if word != "" {
		return Geometry{}, s.errAt(mark, fmt.Sprintf("unexpected %q", word))
	}

	var g Geometry
	if multi {
		polys, err := s.multiBody()
		if err != nil {
			return Geometry{}, err
		}
		g.Polygons = polys
	} else {
		poly, err := s.polyBody()
		if err != nil {
			return Geometry{}, err
		}
		g.Polygons = []Polygon{poly}
	}

	s.skipSpace()
	if !s.eof() {
		return Geometry{}, s.errAt(s.pos, "trailing data after geometry")
	}

	return g, nil
}

type wktScanner struct {
	src string
	pos int
}

func (s *wktScanner) errAt(pos int, msg string) error {
	return &ParseError{Offset: pos, Msg: msg}
}

func (s *wktScanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *wktScanner) skipSpace() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

// word consumes a run of letters; it consumes nothing when the next
// character is not a letter.
func (s *wktScanner) word() string {
	start := s.pos
	for !s.eof() {
		c := s.src[s.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			s.pos++
			continue
		}
		break
	}

	return s.src[start:s.pos]
}

func (s *wktScanner) expect(c byte) error {
	s.skipSpace()
	if s.eof() || s.src[s.pos] != c {
		return s.errAt(s.pos, fmt.Sprintf("expected %q", string(c)))
	}
	s.pos++

	return nil
}

func (s *wktScanner) accept(c byte) bool {
	s.skipSpace()
	if !s.eof() && s.src[s.pos] == c {
		s.pos++
		return true
	}

	return false
}

func (s *wktScanner) hasNumber() bool {
	s.skipSpace()
	if s.eof() {
		return false
	}
	c := s.src[s.pos]

	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (s *wktScanner) number() (float64, error) {
	s.skipSpace()
	start := s.pos
	for !s.eof() {
		c := s.src[s.pos]
		if c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' || (c >= '0' && c <= '9') {
			s.pos++
			continue
		}
		break
	}

	if start == s.pos {
		return 0, s.errAt(start, "expected a number")
	}

	v, err := strconv.ParseFloat(s.src[start:s.pos], 64)
	if err != nil {
		return 0, s.errAt(start, fmt.Sprintf("bad number %q", s.src[start:s.pos]))
	}

	return v, nil
}

func (s *wktScanner) point() (Point, error) {
	lon, err := s.number()
	if err != nil {
		return Point{}, err
	}
	lat, err := s.number()
	if err != nil {
		return Point{}, err
	}

	// Swallow optional Z and M ordinates.
	for s.hasNumber() {
		if _, err := s.number(); err != nil {
			return Point{}, err
		}
	}

	return Point{Lon: lon, Lat: lat}, nil
}

func (s *wktScanner) ring() (Ring, error) {
	s.skipSpace()
	start := s.pos
	if err := s.expect('('); err != nil {
		return nil, err
	}

	var ring Ring
	for {
		p, err := s.point()
		if err != nil {
			return nil, err
		}
		ring = append(ring, p)

		if s.accept(',') {
			continue
		}
		if err := s.expect(')'); err != nil {
			return nil, err
		}
		break
	}

	if len(ring) < 4 {
		return nil, s.errAt(start, "ring must have at least 4 points")
	}
	if ring[0] != ring[len(ring)-1] {
		return nil, s.errAt(start, "ring is not closed")
	}

	return ring, nil
}

func (s *wktScanner) polyBody() (Polygon, error) {
	if err := s.expect('('); err != nil {
		return Polygon{}, err
	}

	var poly Polygon
	for {
		ring, err := s.ring()
		if err != nil {
			return Polygon{}, err
		}
		poly.Rings = append(poly.Rings, ring)

		if s.accept(',') {
			continue
		}
		if err := s.expect(')'); err != nil {
			return Polygon{}, err
		}

		return poly, nil
	}
}

func (s *wktScanner) multiBody() ([]Polygon, error) {
	if err := s.expect('('); err != nil {
		return nil, err
	}

	var polys []Polygon
	for {
		poly, err := s.polyBody()
		if err != nil {
			return nil, err
		}
		polys = append(polys, poly)

		if s.accept(',') {
			continue
		}
		if err := s.expect(')'); err != nil {
			return nil, err
		}

		return polys, nil
	}
}
