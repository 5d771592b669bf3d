package service

import (
	"context"

	"github.com/lucabianchi/pizza-storefront/internal/errors"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	repository "github.com/lucabianchi/pizza-storefront/internal/repositories"
)

type MenuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// ListMenu returns the dashboard catalog.
func (s *MenuService) ListMenu(ctx context.Context) (*models.MenuResponse, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load menu").WithError(err)
	}

	if items == nil {
		items = []models.MenuItem{}
	}

	return &models.MenuResponse{Items: items, Total: len(items)}, nil
}

func (s *MenuService) GetItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Menu item not found").WithError(err)
	}

	return item, nil
}
