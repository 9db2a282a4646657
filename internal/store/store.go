// Package store persists user credentials in a document collection.
package store

import (
	"context"
	"errors"

	"memberportal/internal/models"
)

var (
	// ErrDuplicateEmail is returned by Create when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidRole is returned for roles outside the enum.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidID is returned when an id is not a valid object id.
	ErrInvalidID = errors.New("invalid user id")
)

// Store is the credential store. New users always start with the user role;
// only SetRole, reachable through the admin panel, changes it.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByName(ctx context.Context, name string) (*models.User, error)
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	SetRole(ctx context.Context, id string, role models.Role) error
	ListAll(ctx context.Context) ([]models.User, error)
}
