// Package cart implements the storefront's shopping-cart engine: an
// in-memory state container mutated through a closed set of tagged commands
// processed by a single pure transition function. Totals are derived on
// every transition and are never independently settable.
package cart

import "github.com/lucabianchi/pizza-storefront/internal/models"

// Command is a tagged mutation of the cart state. The six implementations
// below are the only legal transitions.
type Command interface {
	isCommand()
}

// AddItem inserts a validated line item, or accumulates quantity when an
// item with the same id is already present.
type AddItem struct {
	Item models.LineItem
}

// RemoveItem deletes the line item with the given id. Unknown ids are a
// no-op.
type RemoveItem struct {
	ID models.ItemID
}

// UpdateQuantity sets (not increments) the quantity of an existing item.
// A quantity of zero or less behaves exactly like RemoveItem.
type UpdateQuantity struct {
	ID       models.ItemID
	Quantity int
}

// Clear empties the cart and zeroes every total. The applied discount code
// survives a clear and stays attached until RemoveDiscount.
type Clear struct{}

// ApplyDiscount attaches a pre-validated discount code, overwriting any
// previously applied one. Only one discount may be active at a time.
type ApplyDiscount struct {
	Code models.DiscountCode
}

// RemoveDiscount detaches the active discount code, if any.
type RemoveDiscount struct{}

func (AddItem) isCommand()        {}
func (RemoveItem) isCommand()     {}
func (UpdateQuantity) isCommand() {}
func (Clear) isCommand()          {}
func (ApplyDiscount) isCommand()  {}
func (RemoveDiscount) isCommand() {}
