package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type AdminOrderService interface {
	SearchOrders(ctx context.Context, params models.OrderSearchParams) (*models.PaginatedResponse, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	// UpdateStatus changes the order status and emails the customer.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	UpdateTracking(ctx context.Context, orderID uuid.UUID, req *models.UpdateTrackingRequest) (*models.Order, error)
	ListNotifications(ctx context.Context, orderID uuid.UUID) ([]models.Notification, error)
}

type adminOrderService struct {
	store    repository.Store
	notifier NotificationService
}

func NewAdminOrderService(store repository.Store, notifier NotificationService) AdminOrderService {
	return &adminOrderService{store: store, notifier: notifier}
}

func (s *adminOrderService) SearchOrders(ctx context.Context, params models.OrderSearchParams) (*models.PaginatedResponse, error) {

	params.Page, params.PageSize = models.NormalizePage(params.Page, params.PageSize)

	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return nil, appErrors.ValidationError("endDate must not be before startDate")
	}

	orders, total, err := s.store.Orders().SearchOrders(ctx, params)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search orders").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     orders,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func (s *adminOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {

	order, err := s.store.Orders().GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, storeError(err, "Order not found", "Failed to get order")
	}

	return order, nil
}

func (s *adminOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	var notes *string
	if req.Notes != nil {
		sanitized := utils.Sanitize(*req.Notes)
		notes = &sanitized
	}

	if err := s.store.Orders().UpdateOrderStatus(ctx, orderID, req.Status, req.PaymentStatus, notes); err != nil {
		return nil, storeError(err, "Order not found", "Failed to update order status")
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	logger.Info("Order status updated",
		slog.String("orderId", orderID.String()),
		slog.String("status", string(order.Status)),
		slog.String("paymentStatus", string(order.PaymentStatus)))

	if s.notifier != nil {
		if err := s.notifier.SendOrderStatusUpdate(ctx, order); err != nil {
			logger.Error("Failed to send status update", slog.String("orderId", orderID.String()), slog.Any("error", err))
		}
	}

	return order, nil
}

func (s *adminOrderService) UpdateTracking(ctx context.Context, orderID uuid.UUID, req *models.UpdateTrackingRequest) (*models.Order, error) {

	err := s.store.Orders().UpdateTrackingNumber(ctx, orderID, req.TrackingNumber)
	if errors.Is(err, repository.ErrDuplicateTrackingNumber) {
		return nil, appErrors.ConflictError("Tracking number already in use").WithError(err)
	}
	if err != nil {
		return nil, storeError(err, "Order not found", "Failed to update tracking number")
	}

	return s.GetOrder(ctx, orderID)
}

func (s *adminOrderService) ListNotifications(ctx context.Context, orderID uuid.UUID) ([]models.Notification, error) {

	if _, err := s.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}

	return s.notifier.ListByOrder(ctx, orderID)
}
