package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderItem is an immutable copy of a cart line taken at checkout.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int    `json:"quantity"`
}

// OrderItems is persisted as a JSON array on the order row.
type OrderItems []OrderItem

// Value stores the snapshot as a JSON array.
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		items = OrderItems{}
	}
	raw, err := json.Marshal([]OrderItem(items))
	if err != nil {
		return nil, fmt.Errorf("order items: marshal %w", err)
	}
	return string(raw), nil
}

// Scan decodes the JSON array column.
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = OrderItems{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("order items: unsupported scan type %T", value)
	}
	var decoded []OrderItem
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("order items: decode %w", err)
	}
	*items = decoded
	return nil
}

// Count sums the quantities of every line.
func (items OrderItems) Count() int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
