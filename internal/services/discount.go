package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lucabianchi/pizza-storefront/internal/errors"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	repository "github.com/lucabianchi/pizza-storefront/internal/repositories"
)

const codeSuffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type DiscountService struct {
	repo              repository.DiscountRepository
	userRepo          repository.UserRepository
	defaultPercentage float64
	validity          time.Duration
}

func NewDiscountService(repo repository.DiscountRepository, userRepo repository.UserRepository, defaultPercentage float64, validity time.Duration) *DiscountService {
	return &DiscountService{
		repo:              repo,
		userRepo:          userRepo,
		defaultPercentage: defaultPercentage,
		validity:          validity,
	}
}

// CreateCode mints a personal discount code for the user: up to four
// letters of the username, upper-cased, plus a random six-character suffix.
func (s *DiscountService) CreateCode(ctx context.Context, userID uuid.UUID) (*models.DiscountCode, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	code := &models.DiscountCode{
		Code:               generateCode(user.Username),
		DiscountPercentage: s.defaultPercentage,
		ExpiresAt:          time.Now().Add(s.validity),
	}

	if err := s.repo.CreateCode(ctx, code); err != nil {
		return nil, errors.DatabaseError("Failed to create discount code").WithError(err)
	}

	return code, nil
}

// Validate reports whether a code is applicable. Unknown, used or expired
// codes come back as valid=false with a reason; only infrastructure
// failures surface as errors.
func (s *DiscountService) Validate(ctx context.Context, code string) (*models.DiscountValidationResult, error) {
	dc, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.DiscountValidationResult{Valid: false, Error: "Invalid discount code"}, nil
		}

		return nil, errors.DatabaseError("Failed to validate discount code").WithError(err)
	}

	if dc.Used {
		return &models.DiscountValidationResult{Valid: false, Error: "Discount code has already been used"}, nil
	}

	if !dc.ExpiresAt.IsZero() && time.Now().After(dc.ExpiresAt) {
		return &models.DiscountValidationResult{Valid: false, Error: "Discount code has expired"}, nil
	}

	return &models.DiscountValidationResult{Valid: true, DiscountCode: dc}, nil
}

// MarkUsed burns a code after a successful order. A missing row is not an
// error here; the order already went through.
func (s *DiscountService) MarkUsed(ctx context.Context, code string) error {
	if err := s.repo.MarkUsed(ctx, code); err != nil && err != sql.ErrNoRows {
		return errors.DatabaseError("Failed to mark discount code as used").WithError(err)
	}

	return nil
}

func generateCode(username string) string {
	prefix := strings.ToUpper(username)
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}

	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeSuffixCharset))))
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a fixed character rather than panic.
			suffix[i] = 'X'

			continue
		}

		suffix[i] = codeSuffixCharset[n.Int64()]
	}

	return prefix + string(suffix)
}
