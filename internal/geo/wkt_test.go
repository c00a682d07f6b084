package geo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWKT_Polygon(t *testing.T) {
	g, err := ParseWKT("POLYGON((0 0,0 2,2 2,2 0,0 0))")
	require.NoError(t, err)

	require.Len(t, g.Polygons, 1)
	require.Len(t, g.Polygons[0].Rings, 1)
	assert.Len(t, g.Polygons[0].Rings[0], 5)
	assert.Equal(t, Point{Lon: 0, Lat: 2}, g.Polygons[0].Rings[0][1])
}

func TestParseWKT_PolygonWithHole(t *testing.T) {
	g, err := ParseWKT("POLYGON((0 0,0 4,4 4,4 0,0 0),(1 1,1 2,2 2,2 1,1 1))")
	require.NoError(t, err)

	require.Len(t, g.Polygons, 1)
	assert.Len(t, g.Polygons[0].Rings, 2)
}

func TestParseWKT_MultiPolygon(t *testing.T) {
	g, err := ParseWKT("MULTIPOLYGON(((0 0,0 1,1 1,0 0)),((5 5,5 6,6 6,5 5)))")
	require.NoError(t, err)

	assert.Len(t, g.Polygons, 2)
}

func TestParseWKT_LooseSyntax(t *testing.T) {
	// lowercase tag, stray whitespace, negative and fractional ordinates
	g, err := ParseWKT("  polygon ( ( -1.5 0.25 , -1.5 2 , 0 2 , -1.5 0.25 ) ) ")
	require.NoError(t, err)

	require.Len(t, g.Polygons, 1)
	assert.Equal(t, Point{Lon: -1.5, Lat: 0.25}, g.Polygons[0].Rings[0][0])
}

func TestParseWKT_ExtraOrdinatesIgnored(t *testing.T) {
	g, err := ParseWKT("POLYGON Z ((0 0 7,0 2 7,2 2 7,0 0 7))")
	require.NoError(t, err)

	require.Len(t, g.Polygons, 1)
	assert.Equal(t, Point{Lon: 2, Lat: 2}, g.Polygons[0].Rings[0][2])
}

func TestParseWKT_Empty(t *testing.T) {
	for _, src := range []string{"POLYGON EMPTY", "MULTIPOLYGON EMPTY", "polygon empty", "POLYGON Z EMPTY"} {
		g, err := ParseWKT(src)
		require.NoError(t, err, src)
		assert.True(t, g.Empty(), src)
	}
}

func TestParseWKT_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"blank", ""},
		{"unsupported tag", "POINT(1 2)"},
		{"not wkt at all", "definitely not wkt"},
		{"missing body", "POLYGON"},
		{"unclosed paren", "POLYGON((0 0,0 2,2 2,2 0,0 0)"},
		{"ring not closed", "POLYGON((0 0,0 2,2 2,2 0))"},
		{"ring too short", "POLYGON((0 0,0 2,0 0))"},
		{"bad number", "POLYGON((0 0,0 x,2 2,0 0))"},
		{"missing ordinate", "POLYGON((0 0,0,2 2,0 0))"},
		{"trailing data", "POLYGON((0 0,0 2,2 2,2 0,0 0)) extra"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseWKT(tc.src)
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParseWKT_ErrorCarriesOffset(t *testing.T) {
	_, err := ParseWKT("POLYGON((0 0,0 2,2 2,2 0))")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 8, parseErr.Offset) // the offending ring starts here
	assert.Contains(t, parseErr.Error(), "not closed")
}
