package domain

import "errors"

var (
	// ErrInvalidInput marks malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials covers both "no such user" and "bad password";
	// the two are never distinguished in responses.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when a route requires an
	// authenticated session and none is present.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrWrongNamespace is returned when a principal's role does not match
	// the session namespace it is trying to authenticate into.
	ErrWrongNamespace = errors.New("role not allowed in this namespace")

	// ErrRoleNotAllowed is returned when signup requests a role other
	// than "user".
	ErrRoleNotAllowed = errors.New("requested role not allowed")

	ErrEmailTaken           = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInactive         = errors.New("user account disabled")
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrUploadNotFound       = errors.New("upload not found")
	ErrDuplicateTransaction = errors.New("transaction id already submitted")
	ErrForbidden            = errors.New("access forbidden")
)
