// internal/services/errors.go
package services

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors handlers branch on when picking a status code.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateIdentity  = errors.New("identity already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotOwner           = errors.New("not the owner of this resource")
)

// isUniqueViolation reports whether err is a postgres unique_violation
// (23505), which surfaces when concurrent writers race past a pre-check.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
