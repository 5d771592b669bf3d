package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lucabianchi/pizza-storefront/internal/models"
	"github.com/lucabianchi/pizza-storefront/internal/utils"
)

type DiscountRepository interface {
	CreateCode(ctx context.Context, code *models.DiscountCode) error
	GetByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	MarkUsed(ctx context.Context, code string) error
}

type discountRepository struct {
	DB *sql.DB
}

func NewDiscountRepo(db *sql.DB) DiscountRepository {
	return &discountRepository{DB: db}
}

func (r *discountRepository) CreateCode(ctx context.Context, code *models.DiscountCode) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO discount_codes(code, discount_percentage, expires_at, used, created_at)
		VALUES($1, $2, $3, FALSE, NOW())
		RETURNING created_at`

	return r.DB.QueryRowContext(dbCtx, query, code.Code, code.DiscountPercentage, code.ExpiresAt).
		Scan(&code.CreatedAt)
}

func (r *discountRepository) GetByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	dc := &models.DiscountCode{}
	query := `
		SELECT code, discount_percentage, created_at, expires_at, used
		FROM discount_codes
		WHERE code = $1`

	err := r.DB.QueryRowContext(dbCtx, query, code).
		Scan(&dc.Code, &dc.DiscountPercentage, &dc.CreatedAt, &dc.ExpiresAt, &dc.Used)
	if err != nil {
		return nil, err
	}

	return dc, nil
}

func (r *discountRepository) MarkUsed(ctx context.Context, code string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE discount_codes
		SET used = TRUE
		WHERE code = $1`

	result, err := r.DB.ExecContext(dbCtx, query, code)
	if err != nil {
		return fmt.Errorf("failed to mark discount code used: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
