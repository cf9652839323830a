package services

import "github.com/pratik-mahalle/bizdesk/internal/pkg/errors"

// storeError maps a repository error for the caller. Application errors the
// store raised on purpose (not found, conflict) keep their code; anything
// else becomes a persistence error.
func storeError(err error) error {
	if appErr, ok := errors.As(err); ok && appErr.Code != errors.ErrCodePersistence {
		return appErr
	}
	return errors.PersistenceError(err)
}
