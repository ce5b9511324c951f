package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrUnauthorized
	ErrForbidden
	ErrNotFound
	ErrInvalid
	ErrConflict
	ErrTooMany
	ErrInternal
	ErrUserNotFound
	ErrNoCodeIssued
	ErrCodeMismatch
	ErrCodeExpired
	ErrPasswordMismatch
	ErrDeliveryFailure
	ErrCatalogUnavailable
)
