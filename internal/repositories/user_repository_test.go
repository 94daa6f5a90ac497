package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepo(db)
	ctx := t.Context()
	now := time.Now()

	insertSQL := regexp.QuoteMeta(`INSERT INTO users (email, password, name, role)`)

	t.Run("CreateUser defaults to customer", func(t *testing.T) {
		newID := uuid.New()
		user := &models.User{Email: "test@example.com", Password: "hashed", Name: "Test User"}

		mock.ExpectQuery(insertSQL).
			WithArgs(user.Email, user.Password, user.Name, "customer").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID, now, now))

		require.NoError(t, repo.CreateUser(ctx, user))
		assert.Equal(t, newID, user.ID)
		assert.Equal(t, models.RoleCustomer, user.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateUser - Duplicate Email", func(t *testing.T) {
		user := &models.User{Email: "taken@example.com", Password: "hashed", Name: "Taken", Role: models.RoleAdmin}

		mock.ExpectQuery(insertSQL).
			WithArgs(user.Email, user.Password, user.Name, "admin").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.CreateUser(ctx, user)

		require.ErrorIs(t, err, repository.ErrDuplicateEntry)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
			WithArgs("test@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "role", "created_at", "updated_at"}).
				AddRow(id, "test@example.com", "hashed", "Test User", "admin", now, now))

		user, err := repo.GetUserByEmail(ctx, "test@example.com")

		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, models.RoleAdmin, user.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserByID - Not Found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "created_at", "updated_at"}))

		_, err := repo.GetUserByID(ctx, id)

		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserByID - Database Error", func(t *testing.T) {
		id := uuid.New()
		dbErr := errors.New("connection refused")

		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).WithArgs(id).WillReturnError(dbErr)

		_, err := repo.GetUserByID(ctx, id)

		require.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
