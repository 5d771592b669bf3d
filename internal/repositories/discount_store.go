package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lucabianchi/pizza-storefront/internal/cache"
	"github.com/lucabianchi/pizza-storefront/internal/cart"
	"github.com/lucabianchi/pizza-storefront/internal/models"
)

// discountStore persists the discount code a user applied so a new shopping
// session can seed it back, the way the storefront kept it in localStorage.
// It satisfies the cart engine's DiscountStore port.
type discountStore struct {
	cache  cache.Cache
	userID uuid.UUID
	ttl    time.Duration
}

func NewDiscountStore(c cache.Cache, userID uuid.UUID, ttl time.Duration) cart.DiscountStore {
	return &discountStore{cache: c, userID: userID, ttl: ttl}
}

func (s *discountStore) key() string {
	return cache.Key(cache.DiscountKeyPrefix, s.userID.String())
}

func (s *discountStore) Load(ctx context.Context) (*models.DiscountCode, error) {
	var code models.DiscountCode

	found, err := s.cache.Get(ctx, s.key(), &code)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return &code, nil
}

func (s *discountStore) Save(ctx context.Context, code models.DiscountCode) error {
	return s.cache.Set(ctx, s.key(), code, s.ttl)
}

func (s *discountStore) Clear(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key())
}
