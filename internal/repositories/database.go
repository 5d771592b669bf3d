package repository

import (
	"database/sql"
	"fmt"

	"github.com/lucabianchi/pizza-storefront/internal/config"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB

	User     UserRepository
	Menu     MenuRepository
	Discount DiscountRepository
	Order    OrderRepository
}

func New(cfg *config.Config) (*Repository, error) {
	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		DB:       db,
		User:     NewUserRepo(db),
		Menu:     NewMenuRepo(db),
		Discount: NewDiscountRepo(db),
		Order:    NewOrderRepo(db),
	}, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
