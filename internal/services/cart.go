package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lucabianchi/pizza-storefront/internal/cache"
	"github.com/lucabianchi/pizza-storefront/internal/cart"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	repository "github.com/lucabianchi/pizza-storefront/internal/repositories"
)

// CartService holds one cart engine per authenticated user. Engines are
// created lazily on first use and seeded with the user's persisted discount
// code; the cart items themselves are session-local and start empty.
type CartService struct {
	mu         sync.Mutex
	engines    map[uuid.UUID]*cart.Engine
	cache      cache.Cache
	persistTTL time.Duration
}

func NewCartService(c cache.Cache, persistTTL time.Duration) *CartService {
	return &CartService{
		engines:    make(map[uuid.UUID]*cart.Engine),
		cache:      c,
		persistTTL: persistTTL,
	}
}

func (s *CartService) engineFor(ctx context.Context, userID uuid.UUID) *cart.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if engine, ok := s.engines[userID]; ok {
		return engine
	}

	var store cart.DiscountStore
	if s.cache != nil {
		store = repository.NewDiscountStore(s.cache, userID, s.persistTTL)
	}

	engine := cart.NewEngine(ctx, store)
	s.engines[userID] = engine

	return engine
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) *models.CartView {
	return s.engineFor(ctx, userID).Snapshot().View()
}

// AddItem feeds the candidate to the engine. Items violating the engine's
// invariants are silently dropped; the returned view reflects whatever the
// engine accepted.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) *models.CartView {
	engine := s.engineFor(ctx, userID)
	engine.AddItem(req.LineItem())

	return engine.Snapshot().View()
}

func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, id models.ItemID) *models.CartView {
	engine := s.engineFor(ctx, userID)
	engine.RemoveItem(id)

	return engine.Snapshot().View()
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, id models.ItemID, quantity int) *models.CartView {
	engine := s.engineFor(ctx, userID)
	engine.UpdateQuantity(id, quantity)

	return engine.Snapshot().View()
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) *models.CartView {
	engine := s.engineFor(ctx, userID)
	engine.Clear()

	return engine.Snapshot().View()
}

// ApplyDiscount attaches an already-validated code. Validation belongs to
// the discount service and must have happened before this call.
func (s *CartService) ApplyDiscount(ctx context.Context, userID uuid.UUID, code models.DiscountCode) (*models.CartView, error) {
	engine := s.engineFor(ctx, userID)
	err := engine.ApplyDiscount(ctx, code)

	return engine.Snapshot().View(), err
}

func (s *CartService) RemoveDiscount(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	engine := s.engineFor(ctx, userID)
	err := engine.RemoveDiscount(ctx)

	return engine.Snapshot().View(), err
}

// BeginSubmission flips the engine's submission-in-progress flag, reporting
// false when an order is already in flight for this user.
func (s *CartService) BeginSubmission(ctx context.Context, userID uuid.UUID) bool {
	return s.engineFor(ctx, userID).TryBeginSubmission()
}

func (s *CartService) EndSubmission(ctx context.Context, userID uuid.UUID) {
	s.engineFor(ctx, userID).EndSubmission()
}
