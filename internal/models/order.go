package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// DeliveryMethod is a closed set of shipping options, each with a fixed cost.
type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
	DeliveryCargo    DeliveryMethod = "cargo"
	DeliveryOther    DeliveryMethod = "other"
)

var deliveryCosts = map[DeliveryMethod]int64{
	DeliveryStandard: 500,
	DeliveryExpress:  1000,
	DeliveryCargo:    1500,
	DeliveryOther:    0,
}

// ParseDeliveryMethod maps a client label onto a known method. Unknown labels become DeliveryOther.
func ParseDeliveryMethod(label string) DeliveryMethod {
	m := DeliveryMethod(strings.ToLower(strings.TrimSpace(label)))
	if _, ok := deliveryCosts[m]; ok {
		return m
	}

	return DeliveryOther
}

func (m DeliveryMethod) Cost() decimal.Decimal {
	return decimal.NewFromInt(deliveryCosts[m])
}

type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    int             `json:"discount"`
	ProductName string          `json:"product_name,omitempty"`
	Images      []string        `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Order struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Status         OrderStatus     `json:"status"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	PaymentMethod  string          `json:"payment_method"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method"`
	DeliveryCost   decimal.Decimal `json:"delivery_cost"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Address        string          `json:"address"`
	TrackingNumber string          `json:"tracking_number"`
	Notes          string          `json:"notes,omitempty"`
	Items          []OrderItem     `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AdminOrder adds the customer contact shown in the back-office.
type AdminOrder struct {
	Order
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
}

type PlaceOrderRequest struct {
	AddressID      uuid.UUID `json:"address_id" validate:"required"`
	PaymentMethod  string    `json:"payment_method" validate:"required,max=50"`
	DeliveryMethod string    `json:"delivery_method" validate:"required,max=50"`
}

type UpdateOrderStatusRequest struct {
	Status        OrderStatus    `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid failed refunded"`
	Notes         *string        `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type UpdateTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required,min=4,max=64"`
}

type OrderSortField string

const (
	SortCreatedAt   OrderSortField = "created_at"
	SortTotalAmount OrderSortField = "total_amount"
)

type OrderSearchParams struct {
	Page          int
	PageSize      int
	Search        string
	Status        OrderStatus
	PaymentStatus PaymentStatus
	SortField     OrderSortField
	SortAsc       bool
	StartDate     *time.Time
	EndDate       *time.Time
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderPlacedEvent is published once an order has committed.
type OrderPlacedEvent struct {
	OrderID        uuid.UUID       `json:"order_id"`
	UserID         uuid.UUID       `json:"user_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method"`
	TrackingNumber string          `json:"tracking_number"`
	ItemCount      int             `json:"item_count"`
	PlacedAt       time.Time       `json:"placed_at"`
}

// ParseOrderSort reads "createdAt_desc", "createdAt_asc", "totalAmount_desc" or
// "totalAmount_asc". Anything else sorts newest first.
func ParseOrderSort(s string) (OrderSortField, bool) {
	field, dir, _ := strings.Cut(s, "_")
	asc := strings.EqualFold(dir, "asc")

	switch field {
	case "totalAmount":
		return SortTotalAmount, asc
	case "createdAt":
		return SortCreatedAt, asc
	default:
		return SortCreatedAt, false
	}
}
