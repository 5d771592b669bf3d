package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	repository "github.com/lucabianchi/pizza-storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoWithMock(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repository.NewUserRepo(db), mock
}

func userRows(user *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "created_at", "updated_at"}).
		AddRow(user.ID, user.Username, user.Email, user.Password, user.CreatedAt, user.UpdatedAt)
}

func TestUserRepositoryCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Generated Columns Backfilled", func(t *testing.T) {
		// Arrange
		repo, mock := newUserRepoWithMock(t)
		user := &models.User{Username: "mario", Email: "mario@example.com", Password: "hashed"}
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users(username, email, password, created_at, updated_at)`)).
			WithArgs(user.Username, user.Email, user.Password).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryGetUserByUsernameOrEmail(t *testing.T) {
	ctx := context.Background()
	stored := &models.User{
		ID:       uuid.New(),
		Username: "mario",
		Email:    "mario@example.com",
		Password: "hashed",
	}

	t.Run("Success - Lookup By Username", func(t *testing.T) {
		repo, mock := newUserRepoWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE username = $1 OR email = $1`)).
			WithArgs("mario").
			WillReturnRows(userRows(stored))

		user, err := repo.GetUserByUsernameOrEmail(ctx, "mario")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Lookup By Email", func(t *testing.T) {
		repo, mock := newUserRepoWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE username = $1 OR email = $1`)).
			WithArgs("mario@example.com").
			WillReturnRows(userRows(stored))

		user, err := repo.GetUserByUsernameOrEmail(ctx, "mario@example.com")

		require.NoError(t, err)
		assert.Equal(t, stored.Email, user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Identifier", func(t *testing.T) {
		repo, mock := newUserRepoWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE username = $1 OR email = $1`)).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByUsernameOrEmail(ctx, "ghost")

		require.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryGetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - User Found", func(t *testing.T) {
		repo, mock := newUserRepoWithMock(t)
		stored := &models.User{ID: uuid.New(), Username: "mario", Email: "mario@example.com"}

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
			WithArgs(stored.ID).
			WillReturnRows(userRows(stored))

		user, err := repo.GetUserByID(ctx, stored.ID)

		require.NoError(t, err)
		assert.Equal(t, stored.Username, user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
