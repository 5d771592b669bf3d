package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/lucabianchi/pizza-storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMenuRepoWithMock(t *testing.T) (repository.MenuRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repository.NewMenuRepo(db), mock
}

func menuColumns() []string {
	return []string{"id", "name", "description", "price", "size", "toppings", "created_at", "updated_at"}
}

func TestMenuRepositoryListItems(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Toppings Decoded From JSONB", func(t *testing.T) {
		// Arrange
		repo, mock := newMenuRepoWithMock(t)
		now := time.Now()

		rows := sqlmock.NewRows(menuColumns()).
			AddRow(1, "Margherita", "Classic", 12.50, "large", []byte(`["basil","mozzarella"]`), now, now).
			AddRow(2, "Marinara", "No cheese", 10.00, "large", nil, now, now)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM menu_items`)).WillReturnRows(rows)

		// Act
		items, err := repo.ListItems(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, []string{"basil", "mozzarella"}, items[0].Toppings)
		assert.NotNil(t, items[1].Toppings, "missing toppings decode to an empty slice")
		assert.Empty(t, items[1].Toppings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMenuRepositoryGetItemByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Item Found", func(t *testing.T) {
		repo, mock := newMenuRepoWithMock(t)
		now := time.Now()

		rows := sqlmock.NewRows(menuColumns()).
			AddRow(7, "Diavola", "Spicy", 14.00, "medium", []byte(`["salami","chili"]`), now, now)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		item, err := repo.GetItemByID(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), item.ID)
		assert.Equal(t, []string{"salami", "chili"}, item.Toppings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Item", func(t *testing.T) {
		repo, mock := newMenuRepoWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		item, err := repo.GetItemByID(ctx, 99)

		require.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, item)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
