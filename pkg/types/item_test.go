package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemLine(t *testing.T) {
	n := NewItem{ID: "a", Title: "Apple", ImageURL: "img://a", Price: 1.25}
	line := n.Line()

	assert.Equal(t, CartItem{ID: "a", Title: "Apple", ImageURL: "img://a", Price: 1.25, Quantity: 1}, line)
}

func TestNewItemValidate(t *testing.T) {
	assert.ErrorIs(t, NewItem{}.Validate(), ErrInvalidID)
	assert.NoError(t, NewItem{ID: "x"}.Validate())
}

func TestCartItemJSONKeys(t *testing.T) {
	raw := `{"id":"x","title":"T","image_url":"u","price":9.99,"quantity":3}`

	var item CartItem
	require.NoError(t, json.Unmarshal([]byte(raw), &item))
	assert.Equal(t, CartItem{ID: "x", Title: "T", ImageURL: "u", Price: 9.99, Quantity: 3}, item)

	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}
