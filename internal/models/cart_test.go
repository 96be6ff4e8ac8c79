package models_test

import (
	"testing"

	"shopper/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewCart_TotalFunctionOverSlots(t *testing.T) {
	cart := models.NewCart()

	assert.Len(t, cart, models.CartSlots)
	for slot := 0; slot < models.CartSlots; slot++ {
		qty, ok := cart[slot]
		assert.True(t, ok, "slot %d must be present", slot)
		assert.Equal(t, 0, qty)
	}
}

func TestCart_StorageRoundTrip(t *testing.T) {
	cart := models.NewCart()
	cart[0] = 3
	cart[299] = -1

	value, err := cart.Value()
	assert.NoError(t, err)

	var restored models.Cart
	err = restored.Scan(value)
	assert.NoError(t, err)

	assert.Len(t, restored, models.CartSlots, "zero entries survive the round trip")
	assert.Equal(t, 3, restored[0])
	assert.Equal(t, -1, restored[299])
	assert.Equal(t, 0, restored[150])
}

func TestValidSlot(t *testing.T) {
	assert.True(t, models.ValidSlot(0))
	assert.True(t, models.ValidSlot(models.CartSlots-1))
	assert.False(t, models.ValidSlot(-1))
	assert.False(t, models.ValidSlot(models.CartSlots))
}
