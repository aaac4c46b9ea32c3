package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials indicates the request carried no Authorization header.
	ErrMissingCredentials = errors.New("authorization header missing")
	// ErrMalformedCredentials indicates an Authorization header that is not a bearer token.
	ErrMalformedCredentials = errors.New("authorization header malformed")
	// ErrInvalidToken indicates a token that failed signature or shape checks.
	ErrInvalidToken = errors.New("invalid access token")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicate indicates a write that collided with a uniqueness
	// constraint, such as a reused login identifier or ABN.
	ErrDuplicate = errors.New("duplicate entry")
)

// UnknownPrincipalError indicates a well-formed token whose subject no
// longer exists.
type UnknownPrincipalError struct {
	ID int64
}

func (e *UnknownPrincipalError) Error() string {
	return fmt.Sprintf("principal %d not found", e.ID)
}

// EntityNotFoundError indicates the requested entity does not exist, or is
// invisible to the caller; the two cases are deliberately identical.
type EntityNotFoundError struct {
	Entity string
	ID     int64
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d of type %s is not found", e.ID, e.Entity)
}

// NotFound builds an EntityNotFoundError.
func NotFound(entity string, id int64) *EntityNotFoundError {
	return &EntityNotFoundError{Entity: entity, ID: id}
}
