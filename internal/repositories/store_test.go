package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_InTx(t *testing.T) {
	db, mock := newMockDB(t)
	store := repository.NewStore(db, time.Second)
	ctx := t.Context()

	lockSQL := regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`)

	t.Run("Commit", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(lockSQL).WithArgs(userID.String()).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
			return tx.Addresses().LockUser(ctx, userID)
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		fnErr := errors.New("stop")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
			return fnErr
		})

		require.ErrorIs(t, err, fnErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback failure is joined", func(t *testing.T) {
		fnErr := errors.New("stop")
		rbErr := errors.New("connection lost")

		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(rbErr)

		err := store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
			return fnErr
		})

		require.ErrorIs(t, err, fnErr)
		require.ErrorIs(t, err, rbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on panic", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
				panic("boom")
			})
		})

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nested call joins the outer transaction", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(lockSQL).WithArgs(userID.String()).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
			return tx.InTx(ctx, func(ctx context.Context, inner repository.Store) error {
				return inner.Addresses().LockUser(ctx, userID)
			})
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin failure", func(t *testing.T) {
		beginErr := errors.New("too many connections")

		mock.ExpectBegin().WillReturnError(beginErr)

		called := false
		err := store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
			called = true
			return nil
		})

		require.ErrorIs(t, err, beginErr)
		assert.False(t, called)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Commit failure", func(t *testing.T) {
		commitErr := errors.New("serialization failure")

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(commitErr)

		err := store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
			return nil
		})

		require.ErrorIs(t, err, commitErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
