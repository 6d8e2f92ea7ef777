package shared

import "errors"

var (
	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a business-rule violation detected before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a unique natural key collision.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrProtected indicates a delete attempt on a record still referenced elsewhere.
	ErrProtected = errors.New("record is referenced and cannot be deleted")
	// ErrInvalidRole indicates a party used in a slot its role does not permit.
	ErrInvalidRole = errors.New("party role not valid for this use")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
