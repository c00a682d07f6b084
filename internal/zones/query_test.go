package zones

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointInZones_ReturnsAllMatchesInRowOrder(t *testing.T) {
	s := loadFixture(t)

	// (1.5, 1.5) sits inside the three overlapping center zones
	zs, err := s.PointInZones(1.5, 1.5)
	require.NoError(t, err)
	require.Len(t, zs, 3)
	assert.Equal(t, 0, zs[0].ID)
	assert.Equal(t, 1, zs[1].ID)
	assert.Equal(t, 2, zs[2].ID)
}

func TestPointInZones_SingleMatch(t *testing.T) {
	s := loadFixture(t)

	zs, err := s.PointInZones(11.0, 11.0)
	require.NoError(t, err)
	require.Len(t, zs, 1)
	assert.Equal(t, "Пиццерия", zs[0].Attrs.Text("Партнер"))
}

func TestPointInZones_NoMatch(t *testing.T) {
	s := loadFixture(t)

	zs, err := s.PointInZones(50.0, 50.0)
	require.NoError(t, err)
	assert.Empty(t, zs)
}

func TestPointInZones_EdgeInclusive(t *testing.T) {
	s := loadFixture(t)

	// exactly on the western edge of the first zone
	zs, err := s.PointInZones(1.0, 0.0)
	require.NoError(t, err)
	require.NotEmpty(t, zs)
	assert.Equal(t, 0, zs[0].ID)

	// exactly on a corner
	zs, err = s.PointInZones(2.0, 2.0)
	require.NoError(t, err)
	assert.NotEmpty(t, zs)
}

func TestPointInZones_LatLonOrder(t *testing.T) {
	doc := makeDoc(
		[]string{"WKT", "Партнер"},
		// wide and flat: lon 0..10, lat 0..1
		[]string{"POLYGON((0 0,10 0,10 1,0 1,0 0))", "A"},
	)
	s, _, err := FromDocument(doc, DefaultColumns(), "mem")
	require.NoError(t, err)

	// lat=0.5 lon=5 is inside, the swapped order is not
	in, err := s.InAnyZone(0.5, 5.0)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = s.InAnyZone(5.0, 0.5)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestPointInZones_EmptyStore(t *testing.T) {
	doc := makeDoc([]string{"WKT"}, []string{""})
	s, _, err := FromDocument(doc, DefaultColumns(), "empty.csv")
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())

	_, err = s.PointInZones(1.0, 1.0)
	require.Error(t, err)

	var srcErr *DataSourceError
	require.True(t, errors.As(err, &srcErr))
	assert.True(t, errors.Is(err, ErrNoZones))
	assert.Equal(t, "empty.csv", srcErr.Path)

	_, err = s.InAnyZone(1.0, 1.0)
	assert.Error(t, err)
}

func TestInAnyZone(t *testing.T) {
	s := loadFixture(t)

	in, err := s.InAnyZone(1.0, 1.0)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = s.InAnyZone(50.0, 50.0)
	require.NoError(t, err)
	assert.False(t, in)
}
