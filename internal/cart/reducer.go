package cart

import (
	"math"
	"strings"

	"github.com/lucabianchi/pizza-storefront/internal/models"
)

// Apply is the single transition function of the cart. It returns the next
// state and never mutates the one it was given; an invalid or inapplicable
// command returns the input state unchanged.
func Apply(s State, cmd Command) State {
	switch c := cmd.(type) {
	case AddItem:
		return applyAdd(s, c.Item)
	case RemoveItem:
		return applyRemove(s, c.ID)
	case UpdateQuantity:
		return applyUpdateQuantity(s, c.ID, c.Quantity)
	case Clear:
		return applyClear(s)
	case ApplyDiscount:
		return applyDiscount(s, c.Code)
	case RemoveDiscount:
		return removeDiscount(s)
	default:
		return s
	}
}

// validItem gates entry into the cart. Violations make AddItem a silent
// no-op; callers needing feedback must pre-validate at their own boundary.
func validItem(item models.LineItem) bool {
	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) || item.Price <= 0 {
		return false
	}

	if item.Quantity <= 0 {
		return false
	}

	if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.Size) == "" {
		return false
	}

	return true
}

func applyAdd(s State, item models.LineItem) State {
	if !validItem(item) {
		return s
	}

	if item.Toppings == nil {
		item.Toppings = []string{}
	}

	next := s.clone()

	if existing, ok := next.items[item.ID]; ok {
		// Same id accumulates quantity only; the existing item's price,
		// name, size and toppings are kept.
		existing.Quantity += item.Quantity
		next.items[item.ID] = existing
	} else {
		next.items[item.ID] = item
		next.order = append(next.order, item.ID)
	}

	next.totalAmount += item.Price * float64(item.Quantity)
	next.totalItems += item.Quantity
	next.recomputeDiscount()

	return next
}

func applyRemove(s State, id models.ItemID) State {
	existing, ok := s.items[id]
	if !ok {
		return s
	}

	next := s.clone()

	delete(next.items, id)

	for i, oid := range next.order {
		if oid == id {
			next.order = append(next.order[:i], next.order[i+1:]...)

			break
		}
	}

	next.totalAmount -= existing.Price * float64(existing.Quantity)
	next.totalItems -= existing.Quantity
	next.recomputeDiscount()

	return next
}

func applyUpdateQuantity(s State, id models.ItemID, quantity int) State {
	if quantity <= 0 {
		return applyRemove(s, id)
	}

	existing, ok := s.items[id]
	if !ok {
		return s
	}

	diff := quantity - existing.Quantity

	next := s.clone()

	existing.Quantity = quantity
	next.items[id] = existing

	next.totalAmount += existing.Price * float64(diff)
	next.totalItems += diff
	next.recomputeDiscount()

	return next
}

func applyClear(s State) State {
	next := NewState()

	// The discount code survives a clear; with a zero subtotal both derived
	// discount fields are zero until items come back.
	next.discount = s.Discount()
	next.recomputeDiscount()

	return next
}

func applyDiscount(s State, code models.DiscountCode) State {
	next := s.clone()

	// Overwrite, never stack.
	next.discount = &code
	next.recomputeDiscount()

	return next
}

func removeDiscount(s State) State {
	next := s.clone()

	next.discount = nil
	next.recomputeDiscount()

	return next
}
