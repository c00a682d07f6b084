package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByRestaurant_OverlappingRestaurants(t *testing.T) {
	s := loadFixture(t)

	groups, err := s.RestaurantsForPoint(1.5, 1.5)
	require.NoError(t, err)

	// three zones, two distinct restaurants, first-seen order
	require.Len(t, groups, 2)
	assert.Equal(t, "r-1", groups[0].RestaurantID)
	assert.Equal(t, "Бургер Хаус", groups[0].Partner)
	require.Len(t, groups[0].Zones, 1)

	assert.Equal(t, "r-2", groups[1].RestaurantID)
	assert.Equal(t, "Суши Мастер", groups[1].Partner)
	require.Len(t, groups[1].Zones, 2)
	assert.Equal(t, ZoneRef{Name: "Центр широкий", InternalID: "i-2", ZoneID: 1}, groups[1].Zones[0])
	assert.Equal(t, ZoneRef{Name: "Центр резервный", InternalID: "i-3", ZoneID: 2}, groups[1].Zones[1])
}

func TestGroupByRestaurant_UnknownSentinel(t *testing.T) {
	doc := makeDoc(
		[]string{"WKT", "Партнер", "name"},
		[]string{"POLYGON((0 0,0 2,2 2,2 0,0 0))", "A", "без идентификатора"},
	)
	s, _, err := FromDocument(doc, DefaultColumns(), "mem")
	require.NoError(t, err)

	groups := GroupByRestaurant(s.Records(), s.Mapping())
	require.Len(t, groups, 1)
	assert.Equal(t, UnknownRestaurant, groups[0].RestaurantID)
	assert.Equal(t, "A", groups[0].Partner)
}

func TestGroupByRestaurant_FirstSeenPartnerWins(t *testing.T) {
	doc := makeDoc(
		[]string{"WKT", "Партнер", "ID реста"},
		[]string{"POLYGON((0 0,0 2,2 2,2 0,0 0))", "Первый", "r-9"},
		[]string{"POLYGON((0 0,0 3,3 3,3 0,0 0))", "Второй", "r-9"},
	)
	s, _, err := FromDocument(doc, DefaultColumns(), "mem")
	require.NoError(t, err)

	groups := GroupByRestaurant(s.Records(), s.Mapping())
	require.Len(t, groups, 1)
	assert.Equal(t, "Первый", groups[0].Partner)
	assert.Len(t, groups[0].Zones, 2)
}

func TestGroupByRestaurant_EmptyInput(t *testing.T) {
	groups := GroupByRestaurant(nil, DefaultColumns())
	assert.Empty(t, groups)
}

func TestGroupByRestaurant_MissingNameColumnsReadEmpty(t *testing.T) {
	doc := makeDoc(
		[]string{"WKT", "ID реста"},
		[]string{"POLYGON((0 0,0 2,2 2,2 0,0 0))", "r-1"},
	)
	s, _, err := FromDocument(doc, DefaultColumns(), "mem")
	require.NoError(t, err)

	groups := GroupByRestaurant(s.Records(), s.Mapping())
	require.Len(t, groups, 1)
	assert.Equal(t, "", groups[0].Partner)
	require.Len(t, groups[0].Zones, 1)
	assert.Equal(t, "", groups[0].Zones[0].Name)
	assert.Equal(t, "", groups[0].Zones[0].InternalID)
}
