package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	// LoadCart returns the user's cart with product snapshots, creating it on first access.
	LoadCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, req *models.UpdateCartItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) CartService {
	return &cartService{store: store}
}

// loadCart is shared with checkout. With lock set the item rows stay locked until
// the surrounding transaction ends.
func loadCart(ctx context.Context, carts repository.CartRepository, userID uuid.UUID, lock bool) (*models.Cart, error) {

	cart, err := carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := carts.ListItems
	if lock {
		list = carts.LockItems
	}

	items, err := list(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	cart.Items = items

	return cart, nil
}

func (s *cartService) LoadCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := loadCart(ctx, s.store.Carts(), userID, false)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error) {

	logger := middleware.LoggerFromContext(ctx)

	product, err := s.store.Products().GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, storeError(err, "Product not found", "Failed to get product")
	}

	if product.Status != models.ProductStatusActive {
		return nil, appErrors.NotFoundError("Product not found")
	}

	cart, err := s.store.Carts().GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if err := s.store.Carts().AddItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	logger.Info("Item added to cart", slog.String("productId", req.ProductID.String()), slog.Int("quantity", req.Quantity))

	return s.LoadCart(ctx, userID)
}

func (s *cartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, req *models.UpdateCartItemRequest) (*models.Cart, error) {

	cart, err := s.store.Carts().GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if err := s.store.Carts().UpdateItemQuantity(ctx, cart.ID, productID, req.Quantity); err != nil {
		return nil, storeError(err, "Cart item not found", "Failed to update cart item")
	}

	return s.LoadCart(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {

	cart, err := s.store.Carts().GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if err := s.store.Carts().RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, storeError(err, "Cart item not found", "Failed to remove cart item")
	}

	return s.LoadCart(ctx, userID)
}
