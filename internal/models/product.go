package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type Product struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    int             `json:"discount"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
	Status      ProductStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ReservedProduct is the price data read in the same statement that decremented stock.
type ReservedProduct struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Discount int
}

type CreateProductRequest struct {
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Name        string          `json:"name" validate:"required,min=3,max=200"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Discount    int             `json:"discount" validate:"gte=0,lte=100"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Images      []string        `json:"images" validate:"omitempty,dive,required"`
}

type UpdateProductRequest struct {
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Discount    *int             `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Images      []string         `json:"images,omitempty" validate:"omitempty,dive,required"`
	Status      *ProductStatus   `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type ProductFilter struct {
	Search   string
	Page     int
	PageSize int
}
