package zones

import (
	"encoding/json"
	"testing"

	"github.com/rtefood/geozones/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_InsertionOrder(t *testing.T) {
	a := NewAttributes()
	a.Set("b", table.String("2"))
	a.Set("a", table.String("1"))
	a.Set("c", table.Number(3))
	a.Set("a", table.String("updated")) // re-set keeps the original slot

	assert.Equal(t, []string{"b", "a", "c"}, a.Names())
	assert.Equal(t, "updated", a.Text("a"))
	assert.Equal(t, "", a.Text("missing"))

	v, ok := a.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3.0, v.Num)

	_, ok = a.Get("missing")
	assert.False(t, ok)
}

func TestAttributes_MarshalJSONKeepsOrder(t *testing.T) {
	a := NewAttributes()
	a.Set("партнер", table.String("Бургер Хаус"))
	a.Set("id", table.Number(42))
	a.Set("city", table.Value{})

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `{"партнер":"Бургер Хаус","id":42,"city":null}`, string(data))
}

func TestDefaultColumns(t *testing.T) {
	cols := DefaultColumns()
	assert.Equal(t, "WKT", cols.Boundary)
	assert.Equal(t, "Партнер", cols.Partner)
	assert.Equal(t, "ID реста", cols.RestaurantID)
	assert.Equal(t, "city", cols.City)
}
