package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrderRepository interface {
	// CreateOrder inserts the order and its items. A tracking number collision
	// is reported as ErrDuplicateTrackingNumber.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error)
	SearchOrders(ctx context.Context, params models.OrderSearchParams) ([]models.AdminOrder, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, paymentStatus *models.PaymentStatus, notes *string) error
	UpdateTrackingNumber(ctx context.Context, id uuid.UUID, trackingNumber string) error
}

type orderRepository struct {
	DB DBTX
}

func NewOrderRepo(db DBTX) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `o.id, o.user_id, o.status, o.payment_status, o.payment_method, o.delivery_method, o.delivery_cost,
	o.total_amount, o.address, o.tracking_number, o.notes, o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...any) error }, o *models.Order, extra ...any) error {
	dest := []any{&o.ID, &o.UserID, &o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.DeliveryMethod, &o.DeliveryCost,
		&o.TotalAmount, &o.Address, &o.TrackingNumber, &o.Notes, &o.CreatedAt, &o.UpdatedAt}

	return row.Scan(append(dest, extra...)...)
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO orders (user_id, status, payment_status, payment_method, delivery_method, delivery_cost, total_amount, address, tracking_number, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, order.UserID, order.Status, order.PaymentStatus, order.PaymentMethod,
		order.DeliveryMethod, order.DeliveryCost, order.TotalAmount, order.Address, order.TrackingNumber, order.Notes).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return wrapErr("failed to insert order", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, price, discount, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err := r.DB.QueryRowContext(dbCtx, itemQuery, order.ID, item.ProductID, item.Quantity, item.Price, item.Discount, i).
			Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return wrapErr("failed to insert order item", err)
		}
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	if err := scanOrder(r.DB.QueryRowContext(dbCtx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id), order); err != nil {
		return nil, wrapErr("failed to get order", err)
	}

	if err := r.attachItems(dbCtx, []*models.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrdersByUser pages through a user's orders, newest first.
func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, wrapErr("failed to count orders", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, size, (page-1)*size)
	if err != nil {
		return nil, 0, wrapErr("failed to list orders", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, 0, wrapErr("failed to scan order", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("failed to iterate orders", err)
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}

	if err := r.attachItems(dbCtx, refs); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

var orderSortColumns = map[models.OrderSortField]string{
	models.SortCreatedAt:   "o.created_at",
	models.SortTotalAmount: "o.total_amount",
}

func (r *orderRepository) SearchOrders(ctx context.Context, params models.OrderSearchParams) ([]models.AdminOrder, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Search != "" {
		p := arg("%" + params.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(o.id::text ILIKE %[1]s OR o.tracking_number ILIKE %[1]s OR u.email ILIKE %[1]s OR u.name ILIKE %[1]s)", p))
	}
	if params.Status != "" {
		conditions = append(conditions, "o.status = "+arg(params.Status))
	}
	if params.PaymentStatus != "" {
		conditions = append(conditions, "o.payment_status = "+arg(params.PaymentStatus))
	}
	if params.StartDate != nil {
		conditions = append(conditions, "o.created_at >= "+arg(*params.StartDate))
	}
	if params.EndDate != nil {
		conditions = append(conditions, "o.created_at <= "+arg(*params.EndDate))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	from := `FROM orders o JOIN users u ON u.id = o.user_id ` + where

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("failed to count orders", err)
	}

	sortColumn, ok := orderSortColumns[params.SortField]
	if !ok {
		sortColumn = orderSortColumns[models.SortCreatedAt]
	}
	direction := "DESC"
	if params.SortAsc {
		direction = "ASC"
	}

	limit := arg(params.PageSize)
	offset := arg((params.Page - 1) * params.PageSize)

	query := fmt.Sprintf(`SELECT %s, u.email, u.name %s ORDER BY %s %s, o.id LIMIT %s OFFSET %s`,
		orderColumns, from, sortColumn, direction, limit, offset)

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("failed to search orders", err)
	}
	defer rows.Close()

	orders := []models.AdminOrder{}
	for rows.Next() {
		var order models.AdminOrder
		if err := scanOrder(rows, &order.Order, &order.CustomerEmail, &order.CustomerName); err != nil {
			return nil, 0, wrapErr("failed to scan order", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("failed to iterate orders", err)
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i].Order
	}

	if err := r.attachItems(dbCtx, refs); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, paymentStatus *models.PaymentStatus, notes *string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $2, payment_status = COALESCE($3::text, payment_status), notes = COALESCE($4::text, notes), updated_at = NOW()
		WHERE id = $1`

	res, err := r.DB.ExecContext(dbCtx, query, id, status, paymentStatus, notes)
	if err != nil {
		return wrapErr("failed to update order status", err)
	}

	return expectAffected("failed to update order status", res)
}

func (r *orderRepository) UpdateTrackingNumber(ctx context.Context, id uuid.UUID, trackingNumber string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `UPDATE orders SET tracking_number = $2, updated_at = NOW() WHERE id = $1`, id, trackingNumber)
	if err != nil {
		return wrapErr("failed to update tracking number", err)
	}

	return expectAffected("failed to update tracking number", res)
}

// attachItems loads the items of every order in one query.
func (r *orderRepository) attachItems(ctx context.Context, orders []*models.Order) error {

	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return err
	}

	for _, o := range orders {
		o.Items = items[o.ID]
		if o.Items == nil {
			o.Items = []models.OrderItem{}
		}
	}

	return nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]models.OrderItem, error) {

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, oi.discount, oi.created_at, p.name, p.images
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.order_id, oi.position`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, wrapErr("failed to get order items", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]models.OrderItem, len(orderIDs))
	for rows.Next() {
		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.Discount, &item.CreatedAt,
			&item.ProductName, pq.Array(&item.Images))
		if err != nil {
			return nil, wrapErr("failed to scan order item", err)
		}

		items[item.OrderID] = append(items[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate order items", err)
	}

	return items, nil
}
