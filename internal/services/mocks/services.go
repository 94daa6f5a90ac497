package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) LoadCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, req *models.UpdateCartItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID, req)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

type AddressService struct {
	mock.Mock
}

func (m *AddressService) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	args := m.Called(ctx, userID)
	addresses, _ := args.Get(0).([]models.Address)
	return addresses, args.Error(1)
}

func (m *AddressService) Get(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	args := m.Called(ctx, userID, addressID)
	address, _ := args.Get(0).(*models.Address)
	return address, args.Error(1)
}

func (m *AddressService) Create(ctx context.Context, userID uuid.UUID, req *models.CreateAddressRequest) (*models.Address, error) {
	args := m.Called(ctx, userID, req)
	address, _ := args.Get(0).(*models.Address)
	return address, args.Error(1)
}

func (m *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req *models.UpdateAddressRequest) (*models.Address, error) {
	args := m.Called(ctx, userID, addressID, req)
	address, _ := args.Get(0).(*models.Address)
	return address, args.Error(1)
}

func (m *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	return m.Called(ctx, userID, addressID).Error(0)
}

func (m *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	args := m.Called(ctx, userID, addressID)
	address, _ := args.Get(0).(*models.Address)
	return address, args.Error(1)
}

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *CheckoutService) GetSummary(ctx context.Context, userID uuid.UUID) (*models.CheckoutSummary, error) {
	args := m.Called(ctx, userID)
	summary, _ := args.Get(0).(*models.CheckoutSummary)
	return summary, args.Error(1)
}

func (m *CheckoutService) PaymentMethods() []models.PaymentMethod {
	methods, _ := m.Called().Get(0).([]models.PaymentMethod)
	return methods
}

func (m *CheckoutService) GetOrderDetails(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, userID, page, pageSize)
	resp, _ := args.Get(0).(*models.PaginatedResponse)
	return resp, args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

type AdminOrderService struct {
	mock.Mock
}

func (m *AdminOrderService) SearchOrders(ctx context.Context, params models.OrderSearchParams) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, params)
	resp, _ := args.Get(0).(*models.PaginatedResponse)
	return resp, args.Error(1)
}

func (m *AdminOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *AdminOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	args := m.Called(ctx, orderID, req)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *AdminOrderService) UpdateTracking(ctx context.Context, orderID uuid.UUID, req *models.UpdateTrackingRequest) (*models.Order, error) {
	args := m.Called(ctx, orderID, req)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *AdminOrderService) ListNotifications(ctx context.Context, orderID uuid.UUID) ([]models.Notification, error) {
	args := m.Called(ctx, orderID)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Error(1)
}

type ProductService struct {
	mock.Mock
}

func (m *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, filter)
	resp, _ := args.Get(0).(*models.PaginatedResponse)
	return resp, args.Error(1)
}

func (m *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *NotificationService) SendOrderStatusUpdate(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *NotificationService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Notification, error) {
	args := m.Called(ctx, orderID)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Error(1)
}
