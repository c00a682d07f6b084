package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *Document {
	return &Document{
		Columns: []string{"WKT", "Партнер", "ID реста"},
		Rows: [][]Value{
			{String("POLYGON((0 0,0 1,1 1,0 0))"), String("Бургерная"), Number(42)},
			{Value{}, String("Пиццерия"), String("007")},
		},
	}
}

func TestReadWrite_CSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.csv")

	require.NoError(t, Write(path, sampleDoc()))

	doc, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"WKT", "Партнер", "ID реста"}, doc.Columns)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "POLYGON((0 0,0 1,1 1,0 0))", doc.Cell(0, 0).Text())
	assert.Equal(t, "Бургерная", doc.Cell(0, 1).Text())
	assert.Equal(t, KindNumber, doc.Cell(0, 2).Kind)
	assert.Equal(t, 42.0, doc.Cell(0, 2).Num)
	assert.True(t, doc.Cell(1, 0).IsEmpty())
	assert.Equal(t, "007", doc.Cell(1, 2).Text(), "leading zeros survive the round trip")
}

func TestReadWrite_XLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.xlsx")

	require.NoError(t, Write(path, sampleDoc()))

	doc, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"WKT", "Партнер", "ID реста"}, doc.Columns)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "POLYGON((0 0,0 1,1 1,0 0))", doc.Cell(0, 0).Text())
	assert.Equal(t, "42", doc.Cell(0, 2).Text())
	assert.Equal(t, "007", doc.Cell(1, 2).Text())
	assert.True(t, doc.Cell(1, 0).IsEmpty())
}

func TestRead_UppercaseExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ZONES.CSV")

	require.NoError(t, Write(path, sampleDoc()))

	doc, err := Read(path)
	require.NoError(t, err)
	assert.Len(t, doc.Rows, 2)
}

func TestRead_BOMHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	data := "\ufeffWKT,partner\nPOLYGON EMPTY,A\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	doc, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"WKT", "partner"}, doc.Columns)
	assert.Equal(t, 0, doc.ColumnIndex("WKT"))
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("zones.json")
	require.Error(t, err)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "zones.json", formatErr.Path)
}

func TestWrite_UnsupportedExtension(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "zones.parquet"), sampleDoc())
	require.Error(t, err)

	var formatErr *FormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestCell_PadsShortRows(t *testing.T) {
	doc := &Document{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]Value{{String("x")}},
	}

	assert.Equal(t, "x", doc.Cell(0, 0).Text())
	assert.True(t, doc.Cell(0, 2).IsEmpty())
	assert.True(t, doc.Cell(5, 0).IsEmpty())
}

func TestParseCell_Tagging(t *testing.T) {
	cases := []struct {
		text string
		kind Kind
	}{
		{"", KindEmpty},
		{"hello", KindString},
		{"42", KindNumber},
		{"-1.5", KindNumber},
		{"007", KindString},  // leading zeros are not a canonical number
		{"1e5", KindString},  // exponent form kept verbatim
		{"NaN", KindString},  // never tagged numeric
		{"+Inf", KindString}, // never tagged numeric
	}

	for _, tc := range cases {
		v := parseCell(tc.text)
		assert.Equal(t, tc.kind, v.Kind, "text %q", tc.text)
		assert.Equal(t, tc.text, v.Text(), "text %q must survive", tc.text)
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.csv"))
	assert.True(t, Supported("a.XLSX"))
	assert.False(t, Supported("a.json"))
	assert.False(t, Supported("a"))
}
