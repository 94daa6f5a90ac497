package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	// Reserve decrements stock by qty only if at least qty is available.
	Reserve(ctx context.Context, id uuid.UUID, qty int) (*models.ReservedProduct, error)
}

type productRepository struct {
	DB DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, category_id, name, description, price, discount, stock, images, status, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {

	product := &models.Product{}
	var categoryID uuid.NullUUID

	err := row.Scan(&product.ID, &categoryID, &product.Name, &product.Description, &product.Price, &product.Discount,
		&product.Stock, pq.Array(&product.Images), &product.Status, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (category_id, name, description, price, discount, stock, images, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.Price,
		product.Discount, product.Stock, pq.Array(product.Images), product.Status).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return wrapErr("failed to create product", err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, wrapErr("failed to get product", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, price = $4, discount = $5, stock = $6, images = $7, status = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.Price,
		product.Discount, product.Stock, pq.Array(product.Images), product.Status, product.ID).Scan(&product.UpdatedAt)
	if err != nil {
		return wrapErr("failed to update product", err)
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where := `WHERE status = 'active'`
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += ` AND (name ILIKE $1 OR description ILIKE $1)`
	}

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("failed to count products", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)

	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("failed to list products", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, wrapErr("failed to scan product", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("failed to iterate products", err)
	}

	return products, total, nil
}

func (r *productRepository) Reserve(ctx context.Context, id uuid.UUID, qty int) (*models.ReservedProduct, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2
		RETURNING id, name, price, discount`

	reserved := &models.ReservedProduct{}

	err := r.DB.QueryRowContext(dbCtx, query, id, qty).Scan(&reserved.ID, &reserved.Name, &reserved.Price, &reserved.Discount)
	if err == nil {
		return reserved, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, wrapErr("failed to reserve stock", err)
	}

	// zero rows: either the product is gone or the stock is short
	var exists bool
	if err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, wrapErr("failed to check product", err)
	}

	if !exists {
		return nil, fmt.Errorf("failed to reserve stock for %s: %w", id, ErrNotFound)
	}

	return nil, fmt.Errorf("failed to reserve stock for %s: %w", id, ErrInsufficientStock)
}
