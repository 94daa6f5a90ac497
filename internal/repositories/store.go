package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store hands out repositories bound either to the pool or to one transaction.
type Store interface {
	Products() ProductRepository
	Carts() CartRepository
	Addresses() AddressRepository
	Orders() OrderRepository
	Users() UserRepository
	Notifications() NotificationRepository

	// InTx runs fn inside a transaction. The transaction commits when fn returns nil
	// and rolls back when fn returns an error, panics, or the timeout expires.
	// Calling InTx on a Store already bound to a transaction just runs fn.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db        *sql.DB
	q         DBTX
	txTimeout time.Duration
}

func NewStore(db *sql.DB, txTimeout time.Duration) Store {
	return &store{db: db, q: db, txTimeout: txTimeout}
}

func (s *store) Products() ProductRepository  { return NewProductRepo(s.q) }
func (s *store) Carts() CartRepository        { return NewCartRepo(s.q) }
func (s *store) Addresses() AddressRepository { return NewAddressRepo(s.q) }
func (s *store) Orders() OrderRepository      { return NewOrderRepo(s.q) }
func (s *store) Users() UserRepository        { return NewUserRepo(s.q) }
func (s *store) Notifications() NotificationRepository {
	return NewNotificationRepo(s.q)
}

func (s *store) InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) (txErr error) {

	if s.db == nil {
		return fn(ctx, s)
	}

	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rbErr))
			}
		}
	}()

	if err := fn(ctx, &store{q: tx, txTimeout: s.txTimeout}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
