package cart

import (
	"github.com/lucabianchi/pizza-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// State is the cart aggregate. At most one line item exists per distinct id;
// insertion order is preserved for display. All derived fields are
// recomputed by the reducer on every transition.
type State struct {
	items          map[models.ItemID]models.LineItem
	order          []models.ItemID
	totalAmount    float64
	totalItems     int
	discount       *models.DiscountCode
	discountAmount float64
	finalAmount    float64
}

func NewState() State {
	return State{
		items: make(map[models.ItemID]models.LineItem),
	}
}

// Items returns the line items in insertion order.
func (s State) Items() []models.LineItem {
	items := make([]models.LineItem, 0, len(s.order))

	for _, id := range s.order {
		items = append(items, s.items[id])
	}

	return items
}

// Item looks up a line item by id.
func (s State) Item(id models.ItemID) (models.LineItem, bool) {
	item, ok := s.items[id]

	return item, ok
}

func (s State) Len() int {
	return len(s.items)
}

// TotalAmount is the subtotal: sum of price*quantity across all line items,
// before any discount.
func (s State) TotalAmount() float64 {
	return s.totalAmount
}

// TotalItems is the sum of quantities across all line items.
func (s State) TotalItems() int {
	return s.totalItems
}

// Discount returns a copy of the active discount code, or nil.
func (s State) Discount() *models.DiscountCode {
	if s.discount == nil {
		return nil
	}

	dc := *s.discount

	return &dc
}

func (s State) DiscountAmount() float64 {
	return s.discountAmount
}

// FinalAmount is the amount charged: subtotal minus the rounded discount.
func (s State) FinalAmount() float64 {
	return s.finalAmount
}

// View serializes the state for API responses.
func (s State) View() *models.CartView {
	return &models.CartView{
		Items:          s.Items(),
		TotalAmount:    s.totalAmount,
		TotalItems:     s.totalItems,
		DiscountCode:   s.Discount(),
		DiscountAmount: s.discountAmount,
		FinalAmount:    s.finalAmount,
	}
}

// clone copies the mutable containers so the reducer can stay pure.
func (s State) clone() State {
	next := s

	next.items = make(map[models.ItemID]models.LineItem, len(s.items))
	for id, item := range s.items {
		next.items[id] = item
	}

	next.order = make([]models.ItemID, len(s.order))
	copy(next.order, s.order)

	return next
}

// roundDiscount computes round2(amount * pct / 100) with half-up rounding.
// This is monetary math: 49.99 at 15% is 7.4985 and must come out as 7.50,
// so the multiplication happens in decimal space before rounding.
func roundDiscount(amount, percentage float64) float64 {
	d := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(percentage)).
		Div(decimal.NewFromInt(100)).
		Round(2)

	return d.InexactFloat64()
}

// recomputeDiscount derives discountAmount and finalAmount from the current
// subtotal and discount code. finalAmount is never rounded on its own; it is
// always subtotal minus the already-rounded discount.
func (s *State) recomputeDiscount() {
	if s.discount == nil {
		s.discountAmount = 0
		s.finalAmount = s.totalAmount

		return
	}

	s.discountAmount = roundDiscount(s.totalAmount, s.discount.DiscountPercentage)
	s.finalAmount = s.totalAmount - s.discountAmount
}
