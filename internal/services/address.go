package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

// AddressService keeps at most one default address per user. Every mutation runs
// in one transaction holding the user's row lock.
type AddressService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	Get(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error)
	Create(ctx context.Context, userID uuid.UUID, req *models.CreateAddressRequest) (*models.Address, error)
	Update(ctx context.Context, userID, addressID uuid.UUID, req *models.UpdateAddressRequest) (*models.Address, error)
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error)
}

type addressService struct {
	store repository.Store
}

func NewAddressService(store repository.Store) AddressService {
	return &addressService{store: store}
}

func (s *addressService) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {

	addresses, err := s.store.Addresses().ListAddressesByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list addresses").WithError(err)
	}

	return addresses, nil
}

func (s *addressService) Get(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {

	address, err := s.store.Addresses().GetAddressByID(ctx, addressID)
	if err != nil {
		return nil, storeError(err, "Address not found", "Failed to get address")
	}

	if address.UserID != userID {
		return nil, appErrors.NotFoundError("Address not found")
	}

	return address, nil
}

// ownedAddress loads the address inside a mutation. Someone else's address is forbidden.
func ownedAddress(ctx context.Context, repo repository.AddressRepository, userID, addressID uuid.UUID) (*models.Address, error) {

	address, err := repo.GetAddressByID(ctx, addressID)
	if err != nil {
		return nil, storeError(err, "Address not found", "Failed to get address")
	}

	if address.UserID != userID {
		return nil, appErrors.ForbiddenError("Address belongs to another user")
	}

	return address, nil
}

func (s *addressService) Create(ctx context.Context, userID uuid.UUID, req *models.CreateAddressRequest) (*models.Address, error) {

	address := &models.Address{
		UserID:    userID,
		Title:     utils.Sanitize(req.Title),
		City:      utils.Sanitize(req.City),
		Street:    utils.Sanitize(req.Street),
		House:     utils.Sanitize(req.House),
		Apartment: utils.Sanitize(req.Apartment),
		ZipCode:   utils.Sanitize(req.ZipCode),
	}

	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		repo := tx.Addresses()

		if err := repo.LockUser(ctx, userID); err != nil {
			return storeError(err, "User not found", "Failed to lock user")
		}

		count, err := repo.CountAddressesByUser(ctx, userID)
		if err != nil {
			return err
		}

		// the first address is always the default
		address.IsDefault = req.IsDefault || count == 0

		if address.IsDefault {
			if err := repo.UnsetDefault(ctx, userID, uuid.Nil); err != nil {
				return err
			}
		}

		return repo.CreateAddress(ctx, address)
	})
	if err != nil {
		return nil, storeError(err, "Address not found", "Failed to create address")
	}

	middleware.LoggerFromContext(ctx).Info("Address created",
		slog.String("addressId", address.ID.String()),
		slog.Bool("isDefault", address.IsDefault))

	return address, nil
}

func (s *addressService) Update(ctx context.Context, userID, addressID uuid.UUID, req *models.UpdateAddressRequest) (*models.Address, error) {

	var address *models.Address

	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		repo := tx.Addresses()

		if err := repo.LockUser(ctx, userID); err != nil {
			return storeError(err, "User not found", "Failed to lock user")
		}

		var err error
		address, err = ownedAddress(ctx, repo, userID, addressID)
		if err != nil {
			return err
		}

		req.Apply(address)
		address.Title = utils.Sanitize(address.Title)
		address.City = utils.Sanitize(address.City)
		address.Street = utils.Sanitize(address.Street)
		address.House = utils.Sanitize(address.House)
		address.Apartment = utils.Sanitize(address.Apartment)
		address.ZipCode = utils.Sanitize(address.ZipCode)

		// is_default=false on the current default is ignored so the user never ends up without one
		if req.IsDefault != nil && *req.IsDefault && !address.IsDefault {
			if err := repo.UnsetDefault(ctx, userID, address.ID); err != nil {
				return err
			}
			address.IsDefault = true
		}

		if err := repo.UpdateAddress(ctx, address); err != nil {
			return err
		}

		address, err = repo.GetAddressByID(ctx, addressID)

		return err
	})
	if err != nil {
		return nil, storeError(err, "Address not found", "Failed to update address")
	}

	return address, nil
}

func (s *addressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {

	var promoted bool

	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		repo := tx.Addresses()

		if err := repo.LockUser(ctx, userID); err != nil {
			return storeError(err, "User not found", "Failed to lock user")
		}

		address, err := ownedAddress(ctx, repo, userID, addressID)
		if err != nil {
			return err
		}

		if err := repo.DeleteAddress(ctx, address.ID); err != nil {
			return err
		}

		if !address.IsDefault {
			return nil
		}

		promoted, err = repo.PromoteLatest(ctx, userID)

		return err
	})
	if err != nil {
		return storeError(err, "Address not found", "Failed to delete address")
	}

	middleware.LoggerFromContext(ctx).Info("Address deleted",
		slog.String("addressId", addressID.String()),
		slog.Bool("defaultPromoted", promoted))

	return nil
}

func (s *addressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {

	var address *models.Address

	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		repo := tx.Addresses()

		if err := repo.LockUser(ctx, userID); err != nil {
			return storeError(err, "User not found", "Failed to lock user")
		}

		var err error
		address, err = ownedAddress(ctx, repo, userID, addressID)
		if err != nil {
			return err
		}

		if address.IsDefault {
			return nil
		}

		if err := repo.UnsetDefault(ctx, userID, address.ID); err != nil {
			return err
		}

		if err := repo.SetDefault(ctx, address.ID); err != nil {
			return err
		}

		address.IsDefault = true

		return nil
	})
	if err != nil {
		return nil, storeError(err, "Address not found", "Failed to set default address")
	}

	return address, nil
}
