package repository

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type AddressRepository interface {
	// LockUser serializes address changes of one user until the transaction ends.
	LockUser(ctx context.Context, userID uuid.UUID) error
	CreateAddress(ctx context.Context, address *models.Address) error
	GetAddressByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	UpdateAddress(ctx context.Context, address *models.Address) error
	DeleteAddress(ctx context.Context, id uuid.UUID) error
	CountAddressesByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// UnsetDefault clears the flag on every address of the user except keepID.
	UnsetDefault(ctx context.Context, userID, keepID uuid.UUID) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	// PromoteLatest makes the most recently created address of the user the default.
	// It reports false when the user has no addresses left.
	PromoteLatest(ctx context.Context, userID uuid.UUID) (bool, error)
}

type addressRepository struct {
	DB DBTX
}

func NewAddressRepo(db DBTX) AddressRepository {
	return &addressRepository{DB: db}
}

const addressColumns = `id, user_id, title, city, street, house, apartment, zip_code, is_default, created_at, updated_at`

func scanAddress(row interface{ Scan(...any) error }, a *models.Address) error {
	return row.Scan(&a.ID, &a.UserID, &a.Title, &a.City, &a.Street, &a.House, &a.Apartment, &a.ZipCode,
		&a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
}

// The lock key is derived from the user id, so two users only contend on a hash collision.
func (r *addressRepository) LockUser(ctx context.Context, userID uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, userID.String()); err != nil {
		return wrapErr("failed to lock user addresses", err)
	}

	return nil
}

func (r *addressRepository) CreateAddress(ctx context.Context, address *models.Address) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO addresses (user_id, title, city, street, house, apartment, zip_code, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, address.UserID, address.Title, address.City, address.Street, address.House,
		address.Apartment, address.ZipCode, address.IsDefault).Scan(&address.ID, &address.CreatedAt, &address.UpdatedAt)
	if err != nil {
		return wrapErr("failed to create address", err)
	}

	return nil
}

func (r *addressRepository) GetAddressByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	address := &models.Address{}

	if err := scanAddress(r.DB.QueryRowContext(dbCtx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id), address); err != nil {
		return nil, wrapErr("failed to get address", err)
	}

	return address, nil
}

// ListAddressesByUser returns the default address first, then the newest.
func (r *addressRepository) ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC, id`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, wrapErr("failed to list addresses", err)
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		var address models.Address
		if err := scanAddress(rows, &address); err != nil {
			return nil, wrapErr("failed to scan address", err)
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate addresses", err)
	}

	return addresses, nil
}

func (r *addressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE addresses
		SET title = $2, city = $3, street = $4, house = $5, apartment = $6, zip_code = $7, is_default = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, address.ID, address.Title, address.City, address.Street, address.House,
		address.Apartment, address.ZipCode, address.IsDefault).Scan(&address.UpdatedAt)
	if err != nil {
		return wrapErr("failed to update address", err)
	}

	return nil
}

func (r *addressRepository) DeleteAddress(ctx context.Context, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return wrapErr("failed to delete address", err)
	}

	return expectAffected("failed to delete address", res)
}

func (r *addressRepository) CountAddressesByUser(ctx context.Context, userID uuid.UUID) (int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM addresses WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, wrapErr("failed to count addresses", err)
	}

	return count, nil
}

func (r *addressRepository) UnsetDefault(ctx context.Context, userID, keepID uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE addresses SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND id <> $2 AND is_default`

	if _, err := r.DB.ExecContext(dbCtx, query, userID, keepID); err != nil {
		return wrapErr("failed to unset default address", err)
	}

	return nil
}

func (r *addressRepository) SetDefault(ctx context.Context, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// already-default rows are left untouched
	if _, err := r.DB.ExecContext(dbCtx, `UPDATE addresses SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_default`, id); err != nil {
		return wrapErr("failed to set default address", err)
	}

	return nil
}

func (r *addressRepository) PromoteLatest(ctx context.Context, userID uuid.UUID) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE addresses SET is_default = TRUE, updated_at = NOW()
		WHERE id = (
			SELECT id FROM addresses WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)`

	res, err := r.DB.ExecContext(dbCtx, query, userID)
	if err != nil {
		return false, wrapErr("failed to promote default address", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr("failed to promote default address", err)
	}

	return n > 0, nil
}
