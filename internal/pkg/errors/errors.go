package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
	ErrTooMany      = errors.New("too many requests")
	ErrInternal     = errors.New("internal")

	ErrUserNotFound     = errors.New("user not found")
	ErrNoCodeIssued     = errors.New("no code issued")
	ErrCodeMismatch     = errors.New("code mismatch")
	ErrCodeExpired      = errors.New("code expired")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrDeliveryFailure  = errors.New("delivery failure")

	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
