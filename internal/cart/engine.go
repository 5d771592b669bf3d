package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lucabianchi/pizza-storefront/internal/models"
)

// Engine owns one cart State per shopping session. Mutations go through the
// pure reducer; the engine's mutex serializes callers so every operation is
// applied atomically relative to reads. Mutations on invalid input or
// missing ids are silent no-ops, matching the storefront contract.
type Engine struct {
	mu         sync.Mutex
	state      State
	store      DiscountStore
	submitting bool
}

// NewEngine creates an empty cart and seeds a previously persisted discount
// code, if the store holds one. A store read failure is logged and the
// session simply starts without a discount.
func NewEngine(ctx context.Context, store DiscountStore) *Engine {
	e := &Engine{
		state: NewState(),
		store: store,
	}

	if store == nil {
		e.store = NewMemoryStore()

		return e
	}

	code, err := store.Load(ctx)
	if err != nil {
		slog.Warn("Failed to load persisted discount code", slog.String("error", err.Error()))

		return e
	}

	if code != nil {
		e.state = Apply(e.state, ApplyDiscount{Code: *code})
	}

	return e
}

func (e *Engine) AddItem(item models.LineItem) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Apply(e.state, AddItem{Item: item})
}

func (e *Engine) RemoveItem(id models.ItemID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Apply(e.state, RemoveItem{ID: id})
}

func (e *Engine) UpdateQuantity(id models.ItemID, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Apply(e.state, UpdateQuantity{ID: id, Quantity: quantity})
}

// Clear empties the cart. The applied discount code is preserved until
// RemoveDiscount is called.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Apply(e.state, Clear{})
}

// ApplyDiscount attaches a pre-validated code and persists it. The engine
// performs no validation of its own; a persistence failure is returned but
// the in-memory state keeps the discount.
func (e *Engine) ApplyDiscount(ctx context.Context, code models.DiscountCode) error {
	e.mu.Lock()
	e.state = Apply(e.state, ApplyDiscount{Code: code})
	e.mu.Unlock()

	return e.store.Save(ctx, code)
}

// RemoveDiscount detaches the discount and tells the store to forget it.
func (e *Engine) RemoveDiscount(ctx context.Context) error {
	e.mu.Lock()
	e.state = Apply(e.state, RemoveDiscount{})
	e.mu.Unlock()

	return e.store.Clear(ctx)
}

// Snapshot returns a consistent copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.clone()
}

// TryBeginSubmission flips the submission-in-progress flag. It reports false
// when a submission is already running so callers can disable duplicate
// submits; at-most-once semantics stay the caller's responsibility.
func (e *Engine) TryBeginSubmission() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.submitting {
		return false
	}

	e.submitting = true

	return true
}

func (e *Engine) EndSubmission() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.submitting = false
}

func (e *Engine) Submitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.submitting
}
