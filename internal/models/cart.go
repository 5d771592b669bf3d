package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ItemID is the identity key of a line item. The storefront sends menu item
// ids either as JSON numbers or as strings, so the id is normalized to its
// string form at the boundary.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	var raw any

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("invalid item id: %w", err)
	}

	switch v := raw.(type) {
	case string:
		*id = ItemID(v)
	case json.Number:
		*id = ItemID(v.String())
	default:
		return fmt.Errorf("invalid item id: expected string or number, got %T", raw)
	}

	return nil
}

func (id ItemID) String() string {
	return string(id)
}

// Int64 reports the numeric form of the id, for payloads that require the
// original menu item number.
func (id ItemID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)

	return n, err == nil
}

// LineItem is one product variant entry in the cart with its own quantity.
type LineItem struct {
	ID          ItemID   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Size        string   `json:"size"`
	Toppings    []string `json:"toppings"`
	Quantity    int      `json:"quantity"`
}

type AddItemRequest struct {
	ID          ItemID   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Size        string   `json:"size" validate:"required"`
	Toppings    []string `json:"toppings"`
	Quantity    int      `json:"quantity" validate:"required,gt=0"`
}

func (r *AddItemRequest) LineItem() LineItem {
	return LineItem{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Size:        r.Size,
		Toppings:    r.Toppings,
		Quantity:    r.Quantity,
	}
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ApplyDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}

// CartView is the serialized shape of the cart returned to clients. All the
// amount fields are derived by the cart engine and never settable.
type CartView struct {
	Items          []LineItem    `json:"items"`
	TotalAmount    float64       `json:"total_amount"`
	TotalItems     int           `json:"total_items"`
	DiscountCode   *DiscountCode `json:"discount_code,omitempty"`
	DiscountAmount float64       `json:"discount_amount"`
	FinalAmount    float64       `json:"final_amount"`
}
