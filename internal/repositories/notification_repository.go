package repository

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error
	ListNotificationsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Notification, error)
}

type notificationRepository struct {
	DB DBTX
}

func NewNotificationRepo(db DBTX) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (order_id, kind, recipient, subject, content, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, notification.OrderID, notification.Kind, notification.Recipient,
		notification.Subject, notification.Content, notification.Status).
		Scan(&notification.ID, &notification.CreatedAt, &notification.UpdatedAt)
	if err != nil {
		return wrapErr("failed to create notification", err)
	}

	return nil
}

// UpdateNotificationStatus stamps sent_at when the status becomes sent.
func (r *notificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE notifications
		SET status = $2, error_message = $3, updated_at = NOW(),
		    sent_at = CASE WHEN $2::text = 'sent' THEN NOW() ELSE sent_at END
		WHERE id = $1`

	res, err := r.DB.ExecContext(dbCtx, query, id, status, errorMsg)
	if err != nil {
		return wrapErr("failed to update notification status", err)
	}

	return expectAffected("failed to update notification status", res)
}

func (r *notificationRepository) ListNotificationsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Notification, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, order_id, kind, recipient, subject, content, status, error_message, created_at, updated_at, sent_at
		FROM notifications
		WHERE order_id = $1
		ORDER BY created_at`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, wrapErr("failed to list notifications", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification

		err := rows.Scan(&n.ID, &n.OrderID, &n.Kind, &n.Recipient, &n.Subject, &n.Content, &n.Status, &n.ErrorMessage,
			&n.CreatedAt, &n.UpdatedAt, &n.SentAt)
		if err != nil {
			return nil, wrapErr("failed to scan notification", err)
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate notifications", err)
	}

	return notifications, nil
}
