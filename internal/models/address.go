package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house"`
	Apartment string    `json:"apartment,omitempty"`
	ZipCode   string    `json:"zip_code"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Format renders the address as it is frozen on an order:
// "street, house[, apt. apartment], city, zip".
func (a *Address) Format() string {
	parts := []string{a.Street, a.House}
	if a.Apartment != "" {
		parts = append(parts, "apt. "+a.Apartment)
	}
	parts = append(parts, a.City, a.ZipCode)

	return strings.Join(parts, ", ")
}

type CreateAddressRequest struct {
	Title     string `json:"title" validate:"required,max=100"`
	City      string `json:"city" validate:"required,max=100"`
	Street    string `json:"street" validate:"required,max=200"`
	House     string `json:"house" validate:"required,max=20"`
	Apartment string `json:"apartment,omitempty" validate:"omitempty,max=20"`
	ZipCode   string `json:"zip_code" validate:"required,max=20"`
	IsDefault bool   `json:"is_default"`
}

// UpdateAddressRequest is a partial update; nil fields are left unchanged.
type UpdateAddressRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	City      *string `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Street    *string `json:"street,omitempty" validate:"omitempty,min=1,max=200"`
	House     *string `json:"house,omitempty" validate:"omitempty,min=1,max=20"`
	Apartment *string `json:"apartment,omitempty" validate:"omitempty,max=20"`
	ZipCode   *string `json:"zip_code,omitempty" validate:"omitempty,min=1,max=20"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

// Apply copies the set fields onto a. IsDefault is handled by the caller.
func (r *UpdateAddressRequest) Apply(a *Address) {
	if r.Title != nil {
		a.Title = *r.Title
	}
	if r.City != nil {
		a.City = *r.City
	}
	if r.Street != nil {
		a.Street = *r.Street
	}
	if r.House != nil {
		a.House = *r.House
	}
	if r.Apartment != nil {
		a.Apartment = *r.Apartment
	}
	if r.ZipCode != nil {
		a.ZipCode = *r.ZipCode
	}
}
