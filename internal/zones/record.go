// Package zones holds the validated delivery zone set and the queries
// answered from it.
package zones

import (
	"bytes"
	"encoding/json"

	"github.com/rtefood/geozones/internal/geo"
	"github.com/rtefood/geozones/internal/table"
)

// Columns names the attribute columns the engine reads from a source
// table. Everything except Boundary is optional; a missing column just
// reads as empty values.
type Columns struct {
	Boundary     string `yaml:"boundary" json:"boundary"`
	Partner      string `yaml:"partner" json:"partner"`
	RestaurantID string `yaml:"restaurant_id" json:"restaurant_id"`
	InternalID   string `yaml:"internal_id" json:"internal_id"`
	ZoneName     string `yaml:"zone_name" json:"zone_name"`
	City         string `yaml:"city" json:"city"`
}

// DefaultColumns matches the production zone exports.
func DefaultColumns() Columns {
	return Columns{
		Boundary:     "WKT",
		Partner:      "Партнер",
		RestaurantID: "ID реста",
		InternalID:   "ID внутренний",
		ZoneName:     "name",
		City:         "city",
	}
}

// Attributes is an insertion-ordered attribute name to value mapping.
// Column sets vary by source file, so zone attributes are dynamic
// rather than a fixed struct.
type Attributes struct {
	names  []string
	values map[string]table.Value
}

// NewAttributes returns an empty attribute set.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]table.Value)}
}

// Set stores a value, registering the name on first use.
func (a *Attributes) Set(name string, v table.Value) {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = v
}

// Get returns the value stored under name.
func (a *Attributes) Get(name string) (table.Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Text renders the value under name as text, "" when absent.
func (a *Attributes) Text(name string) string {
	return a.values[name].Text()
}

// Names lists the attribute names in insertion order.
func (a *Attributes) Names() []string {
	return a.names
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.names)
}

// MarshalJSON renders the attributes as an object in insertion order.
func (a *Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, name := range a.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(a.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Record is one validated delivery zone: a parsed boundary plus every
// non-boundary column of its source row. ID is the row's position in
// the original source, kept stable across filtering so saves can merge
// by row.
type Record struct {
	Attrs    *Attributes  `json:"attributes"`
	Geometry geo.Geometry `json:"-"`
	ID       int          `json:"id"`
}
