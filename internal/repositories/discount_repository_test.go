package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	repository "github.com/lucabianchi/pizza-storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscountRepoWithMock(t *testing.T) (repository.DiscountRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repository.NewDiscountRepo(db), mock
}

func TestDiscountRepositoryCreateCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Code Inserted", func(t *testing.T) {
		// Arrange
		repo, mock := newDiscountRepoWithMock(t)
		code := &models.DiscountCode{Code: "MARG123ABC", DiscountPercentage: 10, ExpiresAt: time.Now().Add(720 * time.Hour)}
		createdAt := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO discount_codes(code, discount_percentage, expires_at, used, created_at)`)).
			WithArgs(code.Code, code.DiscountPercentage, code.ExpiresAt).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

		// Act
		err := repo.CreateCode(ctx, code)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, createdAt, code.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		repo, mock := newDiscountRepoWithMock(t)
		code := &models.DiscountCode{Code: "MARG123ABC"}

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO discount_codes`)).
			WithArgs(code.Code, code.DiscountPercentage, code.ExpiresAt).
			WillReturnError(errors.New("connection reset"))

		err := repo.CreateCode(ctx, code)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDiscountRepositoryGetByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Code Found", func(t *testing.T) {
		repo, mock := newDiscountRepoWithMock(t)
		now := time.Now()

		rows := sqlmock.NewRows([]string{"code", "discount_percentage", "created_at", "expires_at", "used"}).
			AddRow("MARG123ABC", 15.0, now, now.Add(time.Hour), false)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT code, discount_percentage, created_at, expires_at, used`)).
			WithArgs("MARG123ABC").
			WillReturnRows(rows)

		dc, err := repo.GetByCode(ctx, "MARG123ABC")

		require.NoError(t, err)
		assert.Equal(t, "MARG123ABC", dc.Code)
		assert.InDelta(t, 15.0, dc.DiscountPercentage, 0.001)
		assert.False(t, dc.Used)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Code", func(t *testing.T) {
		repo, mock := newDiscountRepoWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT code, discount_percentage, created_at, expires_at, used`)).
			WithArgs("NOPE").
			WillReturnError(sql.ErrNoRows)

		dc, err := repo.GetByCode(ctx, "NOPE")

		require.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, dc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDiscountRepositoryMarkUsed(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Row Updated", func(t *testing.T) {
		repo, mock := newDiscountRepoWithMock(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE discount_codes`)).
			WithArgs("MARG123ABC").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkUsed(ctx, "MARG123ABC")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Missing Code Reports ErrNoRows", func(t *testing.T) {
		repo, mock := newDiscountRepoWithMock(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE discount_codes`)).
			WithArgs("GONE00").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkUsed(ctx, "GONE00")

		require.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
