package cart

import (
	"context"
	"sync"

	"github.com/lucabianchi/pizza-storefront/internal/models"
)

// DiscountStore is the persistence port for the applied discount code. The
// engine treats it as a key-value side effect: it seeds the discount from
// Load at construction, saves on ApplyDiscount and forgets on
// RemoveDiscount.
type DiscountStore interface {
	Load(ctx context.Context) (*models.DiscountCode, error)
	Save(ctx context.Context, code models.DiscountCode) error
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process DiscountStore used in tests and for
// anonymous sessions.
type MemoryStore struct {
	mu   sync.Mutex
	code *models.DiscountCode
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*models.DiscountCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.code == nil {
		return nil, nil
	}

	dc := *m.code

	return &dc, nil
}

func (m *MemoryStore) Save(_ context.Context, code models.DiscountCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.code = &code

	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.code = nil

	return nil
}
