package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound                = errors.New("record not found")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrDuplicateTrackingNumber = errors.New("duplicate tracking number")
	ErrDuplicateEntry          = errors.New("duplicate entry")
)

const (
	pqUniqueViolation = pq.ErrorCode("23505")

	trackingNumberConstraint = "orders_tracking_number_key"
)

// wrapErr maps driver errors onto the package sentinels and adds the operation as context.
func wrapErr(op string, err error) error {

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		if pqErr.Constraint == trackingNumberConstraint {
			return fmt.Errorf("%s: %w", op, ErrDuplicateTrackingNumber)
		}
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicateEntry, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func expectAffected(op string, res sql.Result) error {

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}
