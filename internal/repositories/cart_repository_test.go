package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cartItemCols = []string{"id", "cart_id", "product_id", "quantity", "created_at", "name", "price", "discount", "stock", "images"}

func TestCartRepository_GetOrCreateCart(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCartRepo(db)
	userID := uuid.New()
	cartID := uuid.New()
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`)).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).AddRow(cartID, userID, now, now))

	cart, err := repo.GetOrCreateCart(t.Context(), userID)

	require.NoError(t, err)
	assert.Equal(t, cartID, cart.ID)
	assert.True(t, cart.IsEmpty())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_Items(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCartRepo(db)
	ctx := t.Context()
	cartID := uuid.New()
	productID := uuid.New()
	now := time.Now()

	t.Run("ListItems", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY ci.created_at, ci.id`) + `$`).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows(cartItemCols).
				AddRow(uuid.New(), cartID, productID, 2, now, "Mug", "100.00", 10, 7, "{mug.png}"))

		items, err := repo.ListItems(ctx, cartID)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, "Mug", items[0].Product.Name)
		assert.Equal(t, 7, items[0].Product.Stock)
		assert.Equal(t, []string{"mug.png"}, items[0].Product.Images)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LockItems takes row locks", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE OF ci`)).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows(cartItemCols))

		items, err := repo.LockItems(ctx, cartID)

		require.NoError(t, err)
		assert.Empty(t, items)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AddItem merges quantities", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`quantity = cart_items.quantity + EXCLUDED.quantity`)).
			WithArgs(cartID, productID, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE carts SET updated_at = NOW() WHERE id = $1`)).
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.AddItem(ctx, cartID, productID, 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateItemQuantity - Missing line", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE cart_items SET quantity = $3`)).
			WithArgs(cartID, productID, 4).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateItemQuantity(ctx, cartID, productID, 4)

		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RemoveItem", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`)).
			WithArgs(cartID, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE carts SET updated_at`)).
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.RemoveItem(ctx, cartID, productID))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteItems removes only the given lines", func(t *testing.T) {
		first, second := uuid.New(), uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1 AND id = ANY($2::uuid[])`)).
			WithArgs(cartID, `{"`+first.String()+`","`+second.String()+`"}`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := repo.DeleteItems(ctx, cartID, []uuid.UUID{first, second})

		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
