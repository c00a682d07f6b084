// Package table reads and writes the tabular documents zone data ships
// in, keeping column order and carrying cell values through verbatim.
package table

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind tags what a cell Value holds.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
)

// Value is a single tagged cell. The zero Value is the empty cell.
type Value struct {
	Str  string
	Num  float64
	Kind Kind
}

// String makes a string cell; empty text collapses to the empty cell.
func String(s string) Value {
	if s == "" {
		return Value{}
	}

	return Value{Kind: KindString, Str: s}
}

// Number makes a numeric cell.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// IsEmpty reports whether the cell holds nothing usable.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty || (v.Kind == KindString && v.Str == "")
}

// Text renders the cell the way the delimited writer stores it.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON renders the cell as a JSON scalar, empty cells as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	default:
		return []byte("null"), nil
	}
}

// parseCell tags raw text. Only text that survives a number round-trip
// unchanged becomes a numeric cell, everything else stays verbatim, so
// identifiers like "007" keep their leading zeros.
func parseCell(s string) Value {
	if s == "" {
		return Value{}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		if strconv.FormatFloat(n, 'f', -1, 64) == s {
			return Value{Kind: KindNumber, Num: n}
		}
	}

	return Value{Kind: KindString, Str: s}
}

// Document is an in-memory table: named columns and rows of tagged
// cells. Rows may be shorter than the column list, missing cells read
// as empty.
type Document struct {
	Columns []string
	Rows    [][]Value
}

// ColumnIndex returns the position of a named column, or -1 when the
// document has no such column.
func (d *Document) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}

	return -1
}

// Cell returns the value at (row, col); out-of-range cells are empty.
func (d *Document) Cell(row, col int) Value {
	if row < 0 || row >= len(d.Rows) || col < 0 || col >= len(d.Rows[row]) {
		return Value{}
	}

	return d.Rows[row][col]
}

// FormatError reports a path whose extension is not a supported
// tabular format.
type FormatError struct {
	Path string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported table format %q, want .csv or .xlsx", filepath.Ext(e.Path))
}

// Supported reports whether the path extension names a format the
// package can read and write.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx":
		return true
	}

	return false
}

// Read loads the document at path, picking the reader by extension.
func Read(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, &FormatError{Path: path}
	}
}

// Write stores the document at path, picking the writer by extension.
func Write(path string, doc *Document) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(path, doc)
	case ".xlsx":
		return writeXLSX(path, doc)
	default:
		return &FormatError{Path: path}
	}
}
