package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/events"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/tracking"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const afterCommitTimeout = 5 * time.Second

var tracer = otel.Tracer("github.com/aaravmahajanofficial/storefront/internal/services")

var paymentMethods = []models.PaymentMethod{
	{ID: "credit_card", Name: "Credit Card"},
	{ID: "paypal", Name: "PayPal"},
	{ID: "cash", Name: "Cash on Delivery"},
}

type CheckoutService interface {
	// PlaceOrder turns the user's cart into an order in one transaction.
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.Order, error)
	// GetSummary prices the cart the same way PlaceOrder does, without reserving anything.
	GetSummary(ctx context.Context, userID uuid.UUID) (*models.CheckoutSummary, error)
	PaymentMethods() []models.PaymentMethod
	GetOrderDetails(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
}

type checkoutService struct {
	store     repository.Store
	tracking  tracking.Generator
	publisher events.Publisher
	notifier  NotificationService
	cfg       config.Checkout
}

func NewCheckoutService(store repository.Store, tracking tracking.Generator, publisher events.Publisher, notifier NotificationService, cfg config.Checkout) CheckoutService {
	return &checkoutService{
		store:     store,
		tracking:  tracking,
		publisher: publisher,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.Order, error) {

	ctx, span := tracer.Start(ctx, "CheckoutService.PlaceOrder", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("delivery.method", req.DeliveryMethod),
	))
	defer span.End()

	logger := middleware.LoggerFromContext(ctx)
	start := time.Now()

	attempts := max(s.cfg.TrackingAttempts, 1)

	var (
		order *models.Order
		err   error
	)

	for attempt := 1; ; attempt++ {
		order, err = s.placeOrder(ctx, userID, req)
		if !errors.Is(err, repository.ErrDuplicateTrackingNumber) || attempt >= attempts {
			break
		}

		metrics.TrackingRetriesTotal.Inc()
		logger.Warn("Tracking number collision, retrying checkout", slog.Int("attempt", attempt))
	}

	if err != nil {
		appErr := checkoutError(err)

		span.RecordError(err)
		span.SetStatus(codes.Error, appErr.Code)
		metrics.ObserveCheckout(checkoutResult(appErr), time.Since(start))

		logger.Warn("Checkout failed", slog.String("code", appErr.Code), slog.Any("error", err))

		return nil, appErr
	}

	units := 0
	for _, item := range order.Items {
		units += item.Quantity
	}

	metrics.ObserveCheckout(metrics.CheckoutPlaced, time.Since(start))
	metrics.StockReservedUnits.Add(float64(units))
	span.SetAttributes(attribute.String("order.id", order.ID.String()), attribute.Int("order.units", units))

	logger.Info("Order placed",
		slog.String("orderId", order.ID.String()),
		slog.String("total", order.TotalAmount.String()),
		slog.Int("items", len(order.Items)))

	// the committed order wins over a failed reload
	if reloaded, err := s.store.Orders().GetOrderByID(ctx, order.ID); err != nil {
		logger.Warn("Failed to reload placed order", slog.String("orderId", order.ID.String()), slog.Any("error", err))
	} else {
		order = reloaded
	}

	s.afterCommit(ctx, order)

	return order, nil
}

func (s *checkoutService) placeOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.Order, error) {

	var order *models.Order

	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {

		cart, err := loadCart(ctx, tx.Carts(), userID, true)
		if err != nil {
			return err
		}

		if cart.IsEmpty() {
			return appErrors.EmptyCartError("Cart is empty")
		}

		address, err := ownedAddress(ctx, tx.Addresses(), userID, req.AddressID)
		if err != nil {
			return err
		}

		reservations, err := reserveStock(ctx, tx.Products(), cart.Items)
		if err != nil {
			return err
		}

		lines := make([]pricing.Line, 0, len(cart.Items))
		items := make([]models.OrderItem, 0, len(cart.Items))
		itemIDs := make([]uuid.UUID, 0, len(cart.Items))

		for _, ci := range cart.Items {
			reserved := reservations[ci.ID]

			lines = append(lines, pricing.Line{UnitPrice: reserved.Price, Discount: reserved.Discount, Quantity: ci.Quantity})
			items = append(items, models.OrderItem{
				ProductID:   reserved.ID,
				Quantity:    ci.Quantity,
				Price:       reserved.Price,
				Discount:    reserved.Discount,
				ProductName: reserved.Name,
				Images:      ci.Product.Images,
			})
			itemIDs = append(itemIDs, ci.ID)
		}

		summary := pricing.Summarize(lines)
		delivery := models.ParseDeliveryMethod(req.DeliveryMethod)

		order = &models.Order{
			UserID:         userID,
			Status:         models.OrderStatusPending,
			PaymentStatus:  models.PaymentStatusPending,
			PaymentMethod:  utils.Sanitize(req.PaymentMethod),
			DeliveryMethod: delivery,
			DeliveryCost:   delivery.Cost(),
			TotalAmount:    summary.Total,
			Address:        address.Format(),
			TrackingNumber: s.tracking.Next(),
			Items:          items,
		}

		if err := tx.Orders().CreateOrder(ctx, order); err != nil {
			return err
		}

		_, err = tx.Carts().DeleteItems(ctx, cart.ID, itemIDs)

		return err
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// afterCommit publishes the event and emails the customer. Failures are logged only.

// reserveStock takes row locks in product id order so that two carts holding
// the same products in a different order cannot deadlock each other.
func reserveStock(ctx context.Context, products repository.ProductRepository, cartItems []models.CartItem) (map[uuid.UUID]*models.ReservedProduct, error) {

	ordered := slices.Clone(cartItems)
	slices.SortStableFunc(ordered, func(a, b models.CartItem) int {
		return bytes.Compare(a.ProductID[:], b.ProductID[:])
	})

	reserved := make(map[uuid.UUID]*models.ReservedProduct, len(ordered))

	for _, ci := range ordered {
		product, err := products.Reserve(ctx, ci.ProductID, ci.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrInsufficientStock):
				return nil, appErrors.InsufficientStockError(ci.ProductID.String()).WithError(err)
			case errors.Is(err, repository.ErrNotFound):
				return nil, appErrors.NotFoundError("Product not found").WithDetail(ci.ProductID.String()).WithError(err)
			default:
				return nil, err
			}
		}

		reserved[ci.ID] = product
	}

	return reserved, nil
}

func (s *checkoutService) afterCommit(ctx context.Context, order *models.Order) {

	logger := middleware.LoggerFromContext(ctx)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitTimeout)
	defer cancel()

	if s.publisher != nil {
		event := &models.OrderPlacedEvent{
			OrderID:        order.ID,
			UserID:         order.UserID,
			TotalAmount:    order.TotalAmount,
			DeliveryMethod: order.DeliveryMethod,
			TrackingNumber: order.TrackingNumber,
			ItemCount:      len(order.Items),
			PlacedAt:       order.CreatedAt,
		}

		if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
			logger.Error("Failed to publish order event", slog.String("orderId", order.ID.String()), slog.Any("error", err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(ctx, order); err != nil {
			logger.Error("Failed to send order confirmation", slog.String("orderId", order.ID.String()), slog.Any("error", err))
		}
	}
}

func checkoutError(err error) *appErrors.AppError {

	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, repository.ErrDuplicateTrackingNumber) {
		return appErrors.ConflictError("Could not allocate a unique tracking number").WithError(err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return appErrors.DatabaseError("Checkout timed out").WithError(err)
	}

	return appErrors.DatabaseError("Failed to place order").WithError(err)
}

func checkoutResult(appErr *appErrors.AppError) string {
	switch appErr.Code {
	case appErrors.ErrCodeEmptyCart:
		return metrics.CheckoutEmptyCart
	case appErrors.ErrCodeInsufficientStock:
		return metrics.CheckoutInsufficientStock
	case appErrors.ErrCodeConflict:
		return metrics.CheckoutConflict
	default:
		return metrics.CheckoutFailed
	}
}

func (s *checkoutService) GetSummary(ctx context.Context, userID uuid.UUID) (*models.CheckoutSummary, error) {

	cart, err := loadCart(ctx, s.store.Carts(), userID, false)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if cart.IsEmpty() {
		return nil, appErrors.EmptyCartError("Cart is empty")
	}

	lines := make([]pricing.Line, 0, len(cart.Items))
	summary := &models.CheckoutSummary{Items: make([]models.CheckoutLine, 0, len(cart.Items))}

	for _, ci := range cart.Items {
		line := pricing.Line{UnitPrice: ci.Product.Price, Discount: ci.Product.Discount, Quantity: ci.Quantity}
		lines = append(lines, line)

		summary.Items = append(summary.Items, models.CheckoutLine{
			ProductID:  ci.ProductID,
			Name:       ci.Product.Name,
			Images:     ci.Product.Images,
			Quantity:   ci.Quantity,
			UnitPrice:  ci.Product.Price,
			Discount:   ci.Product.Discount,
			FinalPrice: pricing.FinalPrice(ci.Product.Price, ci.Product.Discount),
			LineTotal:  line.Price(),
		})
	}

	totals := pricing.Summarize(lines)
	summary.Summary = models.CheckoutTotals{
		Subtotal: totals.Subtotal,
		Discount: totals.Discount,
		Total:    totals.Total,
	}

	summary.Addresses, err = s.store.Addresses().ListAddressesByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list addresses").WithError(err)
	}

	return summary, nil
}

func (s *checkoutService) PaymentMethods() []models.PaymentMethod {
	return paymentMethods
}

func (s *checkoutService) GetOrderDetails(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	return getOwnedOrder(ctx, s.store.Orders(), userID, orderID)
}
