package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Store hands out the embedded repository mocks. InTx records the call and, unless
// the expectation returns an error, runs fn against the same Store.
type Store struct {
	mock.Mock

	ProductRepo      *ProductRepository
	CartRepo         *CartRepository
	AddressRepo      *AddressRepository
	OrderRepo        *OrderRepository
	UserRepo         *UserRepository
	NotificationRepo *NotificationRepository
}

func NewStore() *Store {
	return &Store{
		ProductRepo:      new(ProductRepository),
		CartRepo:         new(CartRepository),
		AddressRepo:      new(AddressRepository),
		OrderRepo:        new(OrderRepository),
		UserRepo:         new(UserRepository),
		NotificationRepo: new(NotificationRepository),
	}
}

func (s *Store) Products() repository.ProductRepository           { return s.ProductRepo }
func (s *Store) Carts() repository.CartRepository                 { return s.CartRepo }
func (s *Store) Addresses() repository.AddressRepository          { return s.AddressRepo }
func (s *Store) Orders() repository.OrderRepository               { return s.OrderRepo }
func (s *Store) Users() repository.UserRepository                 { return s.UserRepo }
func (s *Store) Notifications() repository.NotificationRepository { return s.NotificationRepo }

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	args := s.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}

	return fn(ctx, s)
}

func (s *Store) AssertExpectations(t mock.TestingT) {
	s.Mock.AssertExpectations(t)
	s.ProductRepo.AssertExpectations(t)
	s.CartRepo.AssertExpectations(t)
	s.AddressRepo.AssertExpectations(t)
	s.OrderRepo.AssertExpectations(t)
	s.UserRepo.AssertExpectations(t)
	s.NotificationRepo.AssertExpectations(t)
}

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]*models.Product)
	return products, args.Int(1), args.Error(2)
}

func (m *ProductRepository) Reserve(ctx context.Context, id uuid.UUID, qty int) (*models.ReservedProduct, error) {
	args := m.Called(ctx, id, qty)
	reserved, _ := args.Get(0).(*models.ReservedProduct)
	return reserved, args.Error(1)
}

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *CartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]models.CartItem)
	return items, args.Error(1)
}

func (m *CartRepository) LockItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]models.CartItem)
	return items, args.Error(1)
}

func (m *CartRepository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, cartID, productID, quantity).Error(0)
}

func (m *CartRepository) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, cartID, productID, quantity).Error(0)
}

func (m *CartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return m.Called(ctx, cartID, productID).Error(0)
}

func (m *CartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, cartID, itemIDs)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type AddressRepository struct {
	mock.Mock
}

func (m *AddressRepository) LockUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *AddressRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *AddressRepository) GetAddressByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	args := m.Called(ctx, id)
	address, _ := args.Get(0).(*models.Address)
	return address, args.Error(1)
}

func (m *AddressRepository) ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	args := m.Called(ctx, userID)
	addresses, _ := args.Get(0).([]models.Address)
	return addresses, args.Error(1)
}

func (m *AddressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *AddressRepository) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AddressRepository) CountAddressesByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *AddressRepository) UnsetDefault(ctx context.Context, userID, keepID uuid.UUID) error {
	return m.Called(ctx, userID, keepID).Error(0)
}

func (m *AddressRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AddressRepository) PromoteLatest(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, userID, page, size)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Int(1), args.Error(2)
}

func (m *OrderRepository) SearchOrders(ctx context.Context, params models.OrderSearchParams) ([]models.AdminOrder, int, error) {
	args := m.Called(ctx, params)
	orders, _ := args.Get(0).([]models.AdminOrder)
	return orders, args.Int(1), args.Error(2)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, paymentStatus *models.PaymentStatus, notes *string) error {
	return m.Called(ctx, id, status, paymentStatus, notes).Error(0)
}

func (m *OrderRepository) UpdateTrackingNumber(ctx context.Context, id uuid.UUID, trackingNumber string) error {
	return m.Called(ctx, id, trackingNumber).Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *NotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {
	return m.Called(ctx, id, status, errorMsg).Error(0)
}

func (m *NotificationRepository) ListNotificationsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Notification, error) {
	args := m.Called(ctx, orderID)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Error(1)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

var (
	_ repository.Store                  = (*Store)(nil)
	_ repository.RateLimitRepository    = (*RateLimitRepository)(nil)
	_ repository.NotificationRepository = (*NotificationRepository)(nil)
)
