package zones

import (
	"errors"
	"fmt"

	"github.com/rtefood/geozones/internal/geo"
	"github.com/rtefood/geozones/internal/metrics"
	"github.com/rtefood/geozones/internal/table"

	"github.com/dhconnelly/rtreego"
	"github.com/rs/zerolog/log"
)

// ErrNoZones marks operations against a store with no zones loaded.
var ErrNoZones = errors.New("no zones loaded")

// DataSourceError reports a zone source that cannot serve queries,
// either because loading failed or because nothing usable was loaded.
type DataSourceError struct {
	Err  error
	Path string
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("zone source %q: %v", e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Skip reasons attached to load report entries.
const (
	SkipEmpty      = "empty"
	SkipParseError = "parse error"
)

// Skip records one source row left out of the store.
type Skip struct {
	Err    error  `json:"-"`
	Reason string `json:"reason"`
	Row    int    `json:"row"`
}

// Report sums up one load: how many rows the source had, how many
// survived validation and which rows were dropped.
type Report struct {
	Total   int    `json:"total"`
	Kept    int    `json:"kept"`
	Skipped []Skip `json:"skipped,omitempty"`
}

// Store is the validated zone set, ordered by source row. It is built
// once per source and replaced wholesale on reload; after load only
// city attributes change (via the enrichment pass).
type Store struct {
	base    *table.Document
	index   *rtreego.Rtree
	records []*Record
	columns []string
	source  string
	cols    Columns
}

// Load reads a tabular source and keeps every row with a parseable
// boundary. Rows with an empty or malformed boundary are reported and
// dropped; an unreadable source or a missing boundary column fails the
// whole load.
func Load(path string, cols Columns) (*Store, *Report, error) {
	doc, err := table.Read(path)
	if err != nil {
		return nil, nil, &DataSourceError{Path: path, Err: err}
	}

	return FromDocument(doc, cols, path)
}

// FromDocument builds a store from an already parsed document. The
// document is retained as the base row set for later saves, so skipped
// rows still reach the output file untouched.
func FromDocument(doc *table.Document, cols Columns, source string) (*Store, *Report, error) {
	bIdx := doc.ColumnIndex(cols.Boundary)
	if bIdx < 0 {
		return nil, nil, &DataSourceError{
			Path: source,
			Err:  fmt.Errorf("missing boundary column %q", cols.Boundary),
		}
	}

	s := &Store{
		base:   doc,
		index:  rtreego.NewTree(2, 25, 50),
		source: source,
		cols:   cols,
	}
	report := &Report{Total: len(doc.Rows)}

	for i := range doc.Rows {
		raw := doc.Cell(i, bIdx)
		if raw.IsEmpty() {
			report.Skipped = append(report.Skipped, Skip{Row: i, Reason: SkipEmpty})
			log.Warn().Int("row", i).Msg("Row skipped: empty boundary")
			continue
		}

		g, err := geo.ParseWKT(raw.Text())
		if err != nil {
			report.Skipped = append(report.Skipped, Skip{Row: i, Reason: SkipParseError, Err: err})
			log.Warn().Int("row", i).Err(err).Msg("Row skipped: boundary parse error")
			continue
		}

		rec := &Record{ID: i, Geometry: g, Attrs: NewAttributes()}
		for c, name := range doc.Columns {
			if c == bIdx {
				continue
			}
			rec.Attrs.Set(name, doc.Cell(i, c))
		}
		s.records = append(s.records, rec)

		if !g.Empty() {
			s.index.Insert(&indexEntry{rec: rec, rect: boundsRect(g.Bounds())})
		}
	}

	// Attribute column order mirrors the source, boundary excluded.
	for _, name := range doc.Columns {
		if name != cols.Boundary {
			s.columns = append(s.columns, name)
		}
	}

	report.Kept = len(s.records)
	metrics.ZonesLoaded.Set(float64(report.Kept))
	log.Info().
		Str("source", source).
		Int("total", report.Total).
		Int("kept", report.Kept).
		Int("skipped", len(report.Skipped)).
		Msg("Zones loaded")

	return s, report, nil
}

// Records returns the zones in source order.
func (s *Store) Records() []*Record { return s.records }

// Len returns the number of validated zones.
func (s *Store) Len() int { return len(s.records) }

// Base returns the source document the store was loaded from, with
// every original row including the skipped ones.
func (s *Store) Base() *table.Document { return s.base }

// Source returns the path the store was loaded from.
func (s *Store) Source() string { return s.source }

// Mapping returns the column mapping the store was loaded with.
func (s *Store) Mapping() Columns { return s.cols }

// AttributeColumns lists attribute column names: the source order
// first, then any column registered after load.
func (s *Store) AttributeColumns() []string { return s.columns }

// SetAttribute stores an attribute value on a record and mirrors it
// into the base document when the column is part of the source, so a
// later save keeps the update even for columns the base already has.
func (s *Store) SetAttribute(rec *Record, name string, v table.Value) {
	rec.Attrs.Set(name, v)

	c := s.base.ColumnIndex(name)
	if c < 0 || rec.ID >= len(s.base.Rows) {
		return
	}
	row := s.base.Rows[rec.ID]
	for len(row) <= c {
		row = append(row, table.Value{})
	}
	row[c] = v
	s.base.Rows[rec.ID] = row
}

// EnsureColumn registers an attribute column on the store and every
// record, keeping values that are already set.
func (s *Store) EnsureColumn(name string) {
	known := false
	for _, col := range s.columns {
		if col == name {
			known = true
			break
		}
	}
	if !known {
		s.columns = append(s.columns, name)
	}

	for _, rec := range s.records {
		if _, ok := rec.Attrs.Get(name); !ok {
			rec.Attrs.Set(name, table.Value{})
		}
	}
}

type indexEntry struct {
	rec  *Record
	rect *rtreego.Rect
}

func (e *indexEntry) Bounds() *rtreego.Rect { return e.rect }

// boundsRect converts a geometry box to an index rectangle, padding
// degenerate extents so the tree accepts them.
func boundsRect(b geo.Rect) *rtreego.Rect {
	w := b.MaxLon - b.MinLon
	if w <= 0 {
		w = 1e-9
	}
	h := b.MaxLat - b.MinLat
	if h <= 0 {
		h = 1e-9
	}

	r, err := rtreego.NewRect(rtreego.Point{b.MinLon, b.MinLat}, []float64{w, h})
	if err != nil {
		return rtreego.Point{b.MinLon, b.MinLat}.ToRect(1e-9)
	}

	return r
}
