package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegister(t *testing.T) {
	email := gofakeit.Email()
	body := `{"email":"` + email + `","password":"secret123","name":"Test User"}`

	t.Run("Success", func(t *testing.T) {
		mockUser := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockUser)

		mockUser.On("Register", mock.Anything, &models.RegisterRequest{Email: email, Password: "secret123", Name: "Test User"}).
			Return(&models.User{ID: uuid.New(), Email: email, Role: models.RoleCustomer}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "secret123")
		mockUser.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		mockUser := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockUser)

		mockUser.On("Register", mock.Anything, mock.Anything).Return(nil, appErrors.DuplicateEntryError("User already exists")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Failure - Bad Email", func(t *testing.T) {
		mockUser := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockUser)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register",
			strings.NewReader(`{"email":"nope","password":"secret123","name":"x"}`), nil)
		rr := httptest.NewRecorder()

		handler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockUser.AssertNotCalled(t, "Register")
	})
}

func TestLogin(t *testing.T) {
	body := `{"email":"buyer@example.com","password":"secret123"}`

	t.Run("Success", func(t *testing.T) {
		mockUser := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockUser)

		mockUser.On("Login", mock.Anything, &models.LoginRequest{Email: "buyer@example.com", Password: "secret123"}).
			Return(&models.LoginResponse{Token: "jwt", ExpiresIn: 86400}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.LoginResponse
		testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, "jwt", got.Token)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		mockUser := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockUser)

		mockUser.On("Login", mock.Anything, mock.Anything).
			Return(nil, appErrors.TooManyRequestsError("Too many login attempts").WithDetail("retry after 15s")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		resp := testutils.DecodeResponse(t, rr, nil)
		assert.Equal(t, []string{"retry after 15s"}, resp.Error.Details)
	})
}

func TestProfile(t *testing.T) {
	userID := uuid.New()

	mockUser := new(mocks.UserService)
	handler := handlers.NewUserHandler(mockUser)

	mockUser.On("GetUserByID", mock.Anything, userID).Return(&models.User{ID: userID, Name: "Test User"}, nil).Once()

	req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, userID, nil)
	rr := httptest.NewRecorder()

	handler.Profile().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.User
	testutils.DecodeResponse(t, rr, &got)
	assert.Equal(t, userID, got.ID)
}
