package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

// NotificationService emails customers about their orders. Every email is recorded
// before it is sent and marked sent or failed afterwards.
type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	SendOrderStatusUpdate(ctx context.Context, order *models.Order) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Notification, error)
}

type notificationService struct {
	store        repository.Store
	emailService sendgrid.EmailService
}

// NewNotificationService accepts a nil email service, in which case nothing is sent or recorded.
func NewNotificationService(store repository.Store, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{store: store, emailService: emailService}
}

func (s *notificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {

	subject := fmt.Sprintf("Order confirmation #%s", order.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order.\n\n")
	for _, item := range order.Items {
		name := item.ProductName
		if name == "" {
			name = item.ProductID.String()
		}
		fmt.Fprintf(&b, "%d x %s @ %s\n", item.Quantity, name, item.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\nDelivery (%s): %s\nShip to: %s\nTracking number: %s\n",
		order.TotalAmount.StringFixed(2), order.DeliveryMethod, order.DeliveryCost.StringFixed(2),
		order.Address, order.TrackingNumber)

	return s.send(ctx, order, models.NotificationOrderConfirmation, subject, b.String())
}

func (s *notificationService) SendOrderStatusUpdate(ctx context.Context, order *models.Order) error {

	subject := fmt.Sprintf("Order #%s is now %s", order.ID, order.Status)
	content := fmt.Sprintf("Your order #%s is now %s.\nPayment status: %s\nTracking number: %s\n",
		order.ID, order.Status, order.PaymentStatus, order.TrackingNumber)

	return s.send(ctx, order, models.NotificationOrderStatus, subject, content)
}

func (s *notificationService) send(ctx context.Context, order *models.Order, kind models.NotificationKind, subject, content string) error {

	logger := middleware.LoggerFromContext(ctx)

	if s.emailService == nil {
		logger.Debug("Email delivery disabled, skipping notification", slog.String("orderId", order.ID.String()))
		return nil
	}

	user, err := s.store.Users().GetUserByID(ctx, order.UserID)
	if err != nil {
		return storeError(err, "User not found", "Failed to get user")
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Kind:      kind,
		Recipient: user.Email,
		Subject:   subject,
		Content:   content,
		Status:    models.NotificationPending,
	}

	if err := s.store.Notifications().CreateNotification(ctx, notification); err != nil {
		return appErrors.DatabaseError("Failed to create notification").WithError(err)
	}

	sendErr := s.emailService.Send(ctx, &models.EmailNotificationRequest{
		To:      user.Email,
		Subject: subject,
		Content: content,
	})

	status, errMsg := models.NotificationSent, ""
	if sendErr != nil {
		status, errMsg = models.NotificationFailed, sendErr.Error()
	}

	if err := s.store.Notifications().UpdateNotificationStatus(ctx, notification.ID, status, errMsg); err != nil {
		logger.Error("Failed to update notification status",
			slog.String("notificationId", notification.ID.String()),
			slog.Any("error", err))
	}

	if sendErr != nil {
		logger.Error("Failed to send email",
			slog.String("orderId", order.ID.String()),
			slog.String("kind", string(kind)),
			slog.Any("error", sendErr))

		return appErrors.ThirdPartyError("Failed to send email").WithError(sendErr)
	}

	logger.Info("Email sent",
		slog.String("orderId", order.ID.String()),
		slog.String("kind", string(kind)))

	return nil
}

func (s *notificationService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Notification, error) {

	notifications, err := s.store.Notifications().ListNotificationsByOrder(ctx, orderID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return notifications, nil
}
