package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// AdminHandler serves the back-office routes. The router guards every route with RequireAdmin.
type AdminHandler struct {
	orderService   service.AdminOrderService
	productService service.ProductService
	validator      *validator.Validate
}

func NewAdminHandler(orderService service.AdminOrderService, productService service.ProductService) *AdminHandler {
	return &AdminHandler{orderService: orderService, productService: productService, validator: validator.New()}
}

func parseDate(raw string, endOfDay bool) (*time.Time, error) {

	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}

	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return &t, nil
}

// for eg: GET /admin/orders?status=shipped&sort=totalAmount_desc&startDate=2025-01-01
func (h *AdminHandler) SearchOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		q := r.URL.Query()

		status := q.Get("status")
		paymentStatus := q.Get("paymentStatus")

		if err := h.validator.Var(status, "omitempty,oneof=pending processing shipped delivered cancelled"); err != nil {
			response.Error(w, errors.AddValidationError("status", "unknown order status"))
			return
		}
		if err := h.validator.Var(paymentStatus, "omitempty,oneof=pending paid failed refunded"); err != nil {
			response.Error(w, errors.AddValidationError("paymentStatus", "unknown payment status"))
			return
		}

		startDate, err := parseDate(q.Get("startDate"), false)
		if err != nil {
			response.Error(w, errors.AddValidationError("startDate", "expected YYYY-MM-DD or RFC3339"))
			return
		}
		endDate, err := parseDate(q.Get("endDate"), true)
		if err != nil {
			response.Error(w, errors.AddValidationError("endDate", "expected YYYY-MM-DD or RFC3339"))
			return
		}

		sortField, sortAsc := models.ParseOrderSort(q.Get("sort"))

		params := models.OrderSearchParams{
			Page:          queryInt(r, "page", 1),
			PageSize:      queryInt(r, "pageSize", 0),
			Search:        strings.TrimSpace(q.Get("search")),
			Status:        models.OrderStatus(status),
			PaymentStatus: models.PaymentStatus(paymentStatus),
			SortField:     sortField,
			SortAsc:       sortAsc,
			StartDate:     startDate,
			EndDate:       endDate,
		}

		orders, err := h.orderService.SearchOrders(r.Context(), params)
		if err != nil {
			logger.Error("Failed to search orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *AdminHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid order status input")
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *AdminHandler) UpdateTracking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateTrackingRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateTracking(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update tracking number", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *AdminHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		notifications, err := h.orderService.ListNotifications(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, notifications)
	}
}

func (h *AdminHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, product)
	}
}

func (h *AdminHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update product input")
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
