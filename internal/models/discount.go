package models

import "time"

// DiscountCode entitles a cart to a percentage reduction on the subtotal.
// Expiry and usage are enforced by the discount service before a code ever
// reaches the cart engine; the engine carries the metadata through untouched.
type DiscountCode struct {
	Code               string    `json:"code"`
	DiscountPercentage float64   `json:"discount_percentage"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	ExpiresAt          time.Time `json:"expires_at,omitempty"`
	Used               bool      `json:"used"`
}

type CreateDiscountResponse struct {
	Success      bool          `json:"success"`
	DiscountCode *DiscountCode `json:"discount_code,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// DiscountValidationResult mirrors the contract of the public validation
// endpoint: an unknown, used or expired code is reported as invalid with a
// reason, never as a transport error.
type DiscountValidationResult struct {
	Valid        bool          `json:"valid"`
	DiscountCode *DiscountCode `json:"discount_code,omitempty"`
	Error        string        `json:"error,omitempty"`
}
