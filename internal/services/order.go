package service

import (
	"context"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

// OrderService is the customer's order history.
type OrderService interface {
	ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
}

type orderService struct {
	store repository.Store
}

func NewOrderService(store repository.Store) OrderService {
	return &orderService{store: store}
}

// getOwnedOrder reports another user's order as not found.
func getOwnedOrder(ctx context.Context, orders repository.OrderRepository, userID, orderID uuid.UUID) (*models.Order, error) {

	order, err := orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, storeError(err, "Order not found", "Failed to get order")
	}

	if order.UserID != userID {
		return nil, appErrors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error) {

	page, pageSize = models.NormalizePage(page, pageSize)

	orders, total, err := s.store.Orders().ListOrdersByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list orders").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     orders,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	return getOwnedOrder(ctx, s.store.Orders(), userID, orderID)
}
