package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type ProductService interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) (*models.PaginatedResponse, error)
	// GetProduct serves active products through the read cache.
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
}

type productService struct {
	store repository.Store
	cache cache.Cache
}

func NewProductService(store repository.Store, cache cache.Cache) ProductService {
	return &productService{store: store, cache: cache}
}

func (s *productService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.PaginatedResponse, error) {

	filter.Page, filter.PageSize = models.NormalizePage(filter.Page, filter.PageSize)

	products, total, err := s.store.Products().ListProducts(ctx, filter)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     products,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := cache.Fetch(ctx, s.cache, cache.ProductKey(id), func(ctx context.Context) (*models.Product, error) {
		return s.store.Products().GetProductByID(ctx, id)
	})
	if err != nil {
		return nil, storeError(err, "Product not found", "Failed to get product")
	}

	if product.Status != models.ProductStatusActive {
		return nil, appErrors.NotFoundError("Product not found")
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if req.Price.IsNegative() {
		return nil, appErrors.AddValidationError("price", "must not be negative")
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	product := &models.Product{
		CategoryID:  req.CategoryID,
		Name:        utils.Sanitize(req.Name),
		Description: utils.Sanitize(req.Description),
		Price:       req.Price,
		Discount:    req.Discount,
		Stock:       req.Stock,
		Images:      images,
		Status:      models.ProductStatusActive,
	}

	if err := s.store.Products().CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Product created", slog.String("productId", product.ID.String()))

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)

	if req.Price != nil && req.Price.IsNegative() {
		return nil, appErrors.AddValidationError("price", "must not be negative")
	}

	product, err := s.store.Products().GetProductByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Product not found", "Failed to get product")
	}

	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		product.Name = utils.Sanitize(*req.Name)
	}
	if req.Description != nil {
		product.Description = utils.Sanitize(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.store.Products().UpdateProduct(ctx, product); err != nil {
		return nil, storeError(err, "Product not found", "Failed to update product")
	}

	if err := s.cache.Delete(ctx, cache.ProductKey(id)); err != nil {
		logger.Warn("Failed to invalidate product cache", slog.String("productId", id.String()), slog.Any("error", err))
	}

	logger.Info("Product updated", slog.String("productId", id.String()))

	return product, nil
}
