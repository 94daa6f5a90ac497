package service

import (
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

// storeError maps a repository failure onto the API taxonomy: a missing row becomes
// NOT_FOUND with notFoundMsg, an AppError raised inside a transaction passes through,
// and anything else is reported as a database error.
func storeError(err error, notFoundMsg, dbMsg string) error {

	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.NotFoundError(notFoundMsg).WithError(err)
	}

	return appErrors.DatabaseError(dbMsg).WithError(err)
}
