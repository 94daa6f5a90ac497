package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminHandler() (*handlers.AdminHandler, *mocks.AdminOrderService, *mocks.ProductService) {
	orders := new(mocks.AdminOrderService)
	products := new(mocks.ProductService)

	return handlers.NewAdminHandler(orders, products), orders, products
}

func adminRequest(method, target, body string, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	return testutils.CreateTestRequestWithRole(method, target, reader, uuid.New(), models.RoleAdmin, params)
}

func TestSearchOrders(t *testing.T) {
	t.Run("Success - Filters Parsed", func(t *testing.T) {
		handler, orders, _ := newAdminHandler()

		var captured models.OrderSearchParams
		orders.On("SearchOrders", mock.Anything, mock.AnythingOfType("models.OrderSearchParams")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(models.OrderSearchParams) }).
			Return(&models.PaginatedResponse{Page: 3, PageSize: 20}, nil).Once()

		req := adminRequest(http.MethodGet,
			"/api/v1/admin/orders?page=3&pageSize=20&search=%20ABCD%20&status=shipped&paymentStatus=paid&sort=totalAmount_asc&startDate=2025-01-01&endDate=2025-01-31",
			"", nil)
		rr := httptest.NewRecorder()

		handler.SearchOrders().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 3, captured.Page)
		assert.Equal(t, 20, captured.PageSize)
		assert.Equal(t, "ABCD", captured.Search)
		assert.Equal(t, models.OrderStatusShipped, captured.Status)
		assert.Equal(t, models.PaymentStatusPaid, captured.PaymentStatus)
		assert.Equal(t, models.SortTotalAmount, captured.SortField)
		assert.True(t, captured.SortAsc)

		require.NotNil(t, captured.StartDate)
		require.NotNil(t, captured.EndDate)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *captured.StartDate)
		assert.Equal(t, 31, captured.EndDate.Day())
		assert.Equal(t, 23, captured.EndDate.Hour())
	})

	t.Run("Success - Defaults", func(t *testing.T) {
		handler, orders, _ := newAdminHandler()

		orders.On("SearchOrders", mock.Anything, models.OrderSearchParams{Page: 1, SortField: models.SortCreatedAt}).
			Return(&models.PaginatedResponse{}, nil).Once()

		req := adminRequest(http.MethodGet, "/api/v1/admin/orders", "", nil)
		rr := httptest.NewRecorder()

		handler.SearchOrders().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		orders.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		query string
	}{
		{"Failure - Unknown Status", "?status=lost"},
		{"Failure - Unknown Payment Status", "?paymentStatus=maybe"},
		{"Failure - Bad Start Date", "?startDate=yesterday"},
		{"Failure - Bad End Date", "?endDate=31-01-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, orders, _ := newAdminHandler()

			req := adminRequest(http.MethodGet, "/api/v1/admin/orders"+tt.query, "", nil)
			rr := httptest.NewRecorder()

			handler.SearchOrders().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			resp := testutils.DecodeResponse(t, rr, nil)
			assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
			orders.AssertNotCalled(t, "SearchOrders")
		})
	}
}

func TestAdminOrderUpdates(t *testing.T) {
	orderID := uuid.New()
	params := map[string]string{"id": orderID.String()}

	t.Run("Status - Success", func(t *testing.T) {
		handler, orders, _ := newAdminHandler()

		orders.On("UpdateStatus", mock.Anything, orderID, mock.MatchedBy(func(req *models.UpdateOrderStatusRequest) bool {
			return req.Status == models.OrderStatusDelivered && req.PaymentStatus != nil && *req.PaymentStatus == models.PaymentStatusPaid
		})).Return(&models.Order{ID: orderID, Status: models.OrderStatusDelivered}, nil).Once()

		req := adminRequest(http.MethodPatch, "/api/v1/admin/orders/"+orderID.String()+"/status",
			`{"status":"delivered","payment_status":"paid"}`, params)
		rr := httptest.NewRecorder()

		handler.UpdateOrderStatus().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		orders.AssertExpectations(t)
	})

	t.Run("Status - Invalid Value", func(t *testing.T) {
		handler, orders, _ := newAdminHandler()

		req := adminRequest(http.MethodPatch, "/api/v1/admin/orders/"+orderID.String()+"/status", `{"status":"teleported"}`, params)
		rr := httptest.NewRecorder()

		handler.UpdateOrderStatus().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		orders.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Tracking - Conflict", func(t *testing.T) {
		handler, orders, _ := newAdminHandler()

		orders.On("UpdateTracking", mock.Anything, orderID, &models.UpdateTrackingRequest{TrackingNumber: "TRACK-0001"}).
			Return(nil, appErrors.ConflictError("Tracking number already in use")).Once()

		req := adminRequest(http.MethodPatch, "/api/v1/admin/orders/"+orderID.String()+"/tracking",
			`{"tracking_number":"TRACK-0001"}`, params)
		rr := httptest.NewRecorder()

		handler.UpdateTracking().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		orders.AssertExpectations(t)
	})

	t.Run("Notifications - Success", func(t *testing.T) {
		handler, orders, _ := newAdminHandler()

		orders.On("ListNotifications", mock.Anything, orderID).Return([]models.Notification{
			{OrderID: orderID, Kind: models.NotificationOrderConfirmation, Status: models.NotificationSent},
		}, nil).Once()

		req := adminRequest(http.MethodGet, "/api/v1/admin/orders/"+orderID.String()+"/notifications", "", params)
		rr := httptest.NewRecorder()

		handler.ListNotifications().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got []models.Notification
		testutils.DecodeResponse(t, rr, &got)
		require.Len(t, got, 1)
		assert.Equal(t, models.NotificationSent, got[0].Status)
	})

	t.Run("Get - Not Found", func(t *testing.T) {
		handler, orders, _ := newAdminHandler()

		orders.On("GetOrder", mock.Anything, orderID).Return(nil, appErrors.NotFoundError("Order not found")).Once()

		req := adminRequest(http.MethodGet, "/api/v1/admin/orders/"+orderID.String(), "", params)
		rr := httptest.NewRecorder()

		handler.GetOrder().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAdminProducts(t *testing.T) {
	t.Run("Create - Success", func(t *testing.T) {
		handler, _, products := newAdminHandler()

		products.On("CreateProduct", mock.Anything, mock.MatchedBy(func(req *models.CreateProductRequest) bool {
			return req.Name == "Desk Lamp" && req.Price.Equal(decimal.RequireFromString("49.90")) && req.Stock == 7
		})).Return(&models.Product{ID: uuid.New(), Name: "Desk Lamp", Status: models.ProductStatusActive}, nil).Once()

		req := adminRequest(http.MethodPost, "/api/v1/admin/products",
			`{"name":"Desk Lamp","price":"49.90","discount":10,"stock":7}`, nil)
		rr := httptest.NewRecorder()

		handler.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		products.AssertExpectations(t)
	})

	t.Run("Create - Discount Out Of Range", func(t *testing.T) {
		handler, _, products := newAdminHandler()

		req := adminRequest(http.MethodPost, "/api/v1/admin/products", `{"name":"Desk Lamp","price":"10","discount":120}`, nil)
		rr := httptest.NewRecorder()

		handler.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		products.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("Update - Success", func(t *testing.T) {
		handler, _, products := newAdminHandler()
		productID := uuid.New()

		products.On("UpdateProduct", mock.Anything, productID, mock.MatchedBy(func(req *models.UpdateProductRequest) bool {
			return req.Stock != nil && *req.Stock == 0 && req.Name == nil
		})).Return(&models.Product{ID: productID}, nil).Once()

		req := adminRequest(http.MethodPut, "/api/v1/admin/products/"+productID.String(), `{"stock":0}`,
			map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		handler.UpdateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		products.AssertExpectations(t)
	})
}
