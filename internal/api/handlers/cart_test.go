package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockCart := new(mocks.CartService)
		handler := handlers.NewCartHandler(mockCart)

		cart := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{{ProductID: uuid.New(), Quantity: 2}}}
		mockCart.On("LoadCart", mock.Anything, userID).Return(cart, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, userID, nil)
		rr := httptest.NewRecorder()

		handler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.Cart
		testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, cart.ID, got.ID)
		assert.Len(t, got.Items, 1)
		mockCart.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		mockCart := new(mocks.CartService)
		handler := handlers.NewCartHandler(mockCart)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart", nil, nil)
		rr := httptest.NewRecorder()

		handler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockCart.AssertNotCalled(t, "LoadCart")
	})
}

func TestAddCartItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockCart := new(mocks.CartService)
		handler := handlers.NewCartHandler(mockCart)

		mockCart.On("AddItem", mock.Anything, userID, &models.AddCartItemRequest{ProductID: productID, Quantity: 3}).
			Return(&models.Cart{UserID: userID}, nil).Once()

		body := `{"product_id":"` + productID.String() + `","quantity":3}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockCart.AssertExpectations(t)
	})

	t.Run("Failure - Zero Quantity", func(t *testing.T) {
		mockCart := new(mocks.CartService)
		handler := handlers.NewCartHandler(mockCart)

		body := `{"product_id":"` + productID.String() + `","quantity":0}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCart.AssertNotCalled(t, "AddItem")
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		mockCart := new(mocks.CartService)
		handler := handlers.NewCartHandler(mockCart)

		mockCart.On("AddItem", mock.Anything, userID, mock.Anything).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		body := `{"product_id":"` + productID.String() + `","quantity":1}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	params := map[string]string{"productId": productID.String()}

	t.Run("Update - Success", func(t *testing.T) {
		mockCart := new(mocks.CartService)
		handler := handlers.NewCartHandler(mockCart)

		mockCart.On("UpdateItem", mock.Anything, userID, productID, &models.UpdateCartItemRequest{Quantity: 5}).
			Return(&models.Cart{UserID: userID}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPatch, "/api/v1/cart/items/"+productID.String(),
			bytes.NewReader([]byte(`{"quantity":5}`)), userID, params)
		rr := httptest.NewRecorder()

		handler.UpdateItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockCart.AssertExpectations(t)
	})

	t.Run("Remove - Missing Item", func(t *testing.T) {
		mockCart := new(mocks.CartService)
		handler := handlers.NewCartHandler(mockCart)

		mockCart.On("RemoveItem", mock.Anything, userID, productID).Return(nil, appErrors.NotFoundError("Cart item not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/"+productID.String(), nil, userID, params)
		rr := httptest.NewRecorder()

		handler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		resp := testutils.DecodeResponse(t, rr, nil)
		assert.Equal(t, "Cart item not found", resp.Error.Message)
	})

	t.Run("Remove - Bad Product ID", func(t *testing.T) {
		mockCart := new(mocks.CartService)
		handler := handlers.NewCartHandler(mockCart)

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/x", nil, userID,
			map[string]string{"productId": "x"})
		rr := httptest.NewRecorder()

		handler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCart.AssertNotCalled(t, "RemoveItem")
	})
}
