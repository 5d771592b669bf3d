package models

import "time"

// MenuItem is one orderable pizza variant on the dashboard.
type MenuItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Size        string    `json:"size"`
	Toppings    []string  `json:"toppings"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MenuResponse struct {
	Items []MenuItem `json:"items"`
	Total int        `json:"total"`
}
