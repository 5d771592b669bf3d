package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lucabianchi/pizza-storefront/internal/models"
	"github.com/lucabianchi/pizza-storefront/internal/utils"
)

type MenuRepository interface {
	ListItems(ctx context.Context) ([]models.MenuItem, error)
	GetItemByID(ctx context.Context, id int64) (*models.MenuItem, error)
}

type menuRepository struct {
	DB *sql.DB
}

func NewMenuRepo(db *sql.DB) MenuRepository {
	return &menuRepository{DB: db}
}

func (r *menuRepository) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, price, size, toppings, created_at, updated_at
		FROM menu_items
		ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}

	return items, nil
}

func (r *menuRepository) GetItemByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, price, size, toppings, created_at, updated_at
		FROM menu_items
		WHERE id = $1`

	return scanMenuItem(r.DB.QueryRowContext(dbCtx, query, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

// toppings live in a JSONB column, the same shape the storefront consumed.
func scanMenuItem(row rowScanner) (*models.MenuItem, error) {
	item := &models.MenuItem{}

	var toppingsJSON []byte

	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Size,
		&toppingsJSON, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(toppingsJSON) > 0 {
		if err := json.Unmarshal(toppingsJSON, &item.Toppings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal toppings: %w", err)
		}
	}

	if item.Toppings == nil {
		item.Toppings = []string{}
	}

	return item, nil
}
