package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CartSlots is the fixed number of catalog slots a cart tracks.
const CartSlots = 300

// Cart maps a catalog slot index (0..CartSlots-1) to a quantity. Quantities are
// plain integers with no lower bound; decrementing past zero is allowed.
type Cart map[int]int

// NewCart returns a cart with every slot explicitly present and set to zero.
func NewCart() Cart {
	cart := make(Cart, CartSlots)
	for i := 0; i < CartSlots; i++ {
		cart[i] = 0
	}
	return cart
}

// ValidSlot reports whether slot is inside the fixed cart range.
func ValidSlot(slot int) bool {
	return slot >= 0 && slot < CartSlots
}

// Value marshals the cart to JSON for storage in a text column.
func (c Cart) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart: %w", err)
	}
	return string(b), nil
}

// Scan unmarshals a cart from its stored JSON text form.
func (c *Cart) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported cart column type %T", value)
	}
	return json.Unmarshal(data, c)
}
