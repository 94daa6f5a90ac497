package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CartRepository interface {
	// GetOrCreateCart returns the user's cart, creating an empty one on first access.
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	// LockItems is ListItems with the cart rows locked until the transaction ends.
	LockItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error
	DeleteItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) (int64, error)
}

type cartRepository struct {
	DB DBTX
}

func NewCartRepo(db DBTX) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return nil, wrapErr("failed to create cart", err)
	}

	cart := &models.Cart{Items: []models.CartItem{}}

	query := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return nil, wrapErr("failed to get cart", err)
	}

	return cart, nil
}

const cartItemsQuery = `
	SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at,
	       p.name, p.price, p.discount, p.stock, p.images
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.cart_id = $1
	ORDER BY ci.created_at, ci.id`

func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	return r.listItems(ctx, cartItemsQuery, cartID)
}

func (r *cartRepository) LockItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	return r.listItems(ctx, cartItemsQuery+` FOR UPDATE OF ci`, cartID)
}

func (r *cartRepository) listItems(ctx context.Context, query string, cartID uuid.UUID) ([]models.CartItem, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, wrapErr("failed to list cart items", err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem

		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt,
			&item.Product.Name, &item.Product.Price, &item.Product.Discount, &item.Product.Stock, pq.Array(&item.Product.Images))
		if err != nil {
			return nil, wrapErr("failed to scan cart item", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate cart items", err)
	}

	return items, nil
}

// AddItem inserts the line or, if the product is already in the cart, adds to its quantity.
func (r *cartRepository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`

	if _, err := r.DB.ExecContext(dbCtx, query, cartID, productID, quantity); err != nil {
		return wrapErr("failed to add cart item", err)
	}

	return r.touch(dbCtx, cartID)
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND product_id = $2`, cartID, productID, quantity)
	if err != nil {
		return wrapErr("failed to update cart item", err)
	}

	if err := expectAffected("failed to update cart item", res); err != nil {
		return err
	}

	return r.touch(dbCtx, cartID)
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	if err != nil {
		return wrapErr("failed to remove cart item", err)
	}

	if err := expectAffected("failed to remove cart item", res); err != nil {
		return err
	}

	return r.touch(dbCtx, cartID)
}

// DeleteItems removes exactly the given lines, leaving anything added to the cart since they were read.
func (r *cartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}

	res, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = ANY($2::uuid[])`, cartID, pq.Array(ids))
	if err != nil {
		return 0, wrapErr("failed to clear cart items", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart items: %w", err)
	}

	return n, nil
}

func (r *cartRepository) touch(ctx context.Context, cartID uuid.UUID) error {

	if _, err := r.DB.ExecContext(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		return wrapErr("failed to update cart", err)
	}

	return nil
}
