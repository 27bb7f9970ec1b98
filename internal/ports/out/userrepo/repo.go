// Package userrepo defines the outbound port for user persistence.
package userrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"inkwell-backend/internal/domain"
)

var (
	// ErrNotFound signals that no user exists for the given id.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken signals a violation of the unique-email constraint.
	// Uniqueness is enforced by the store, never by a check-then-insert.
	ErrEmailTaken = errors.New("email already registered")
)

// NewUser is a validated create payload. The store assigns id and timestamps.
type NewUser struct {
	Name  string
	Email string
	Age   int
}

// Patch carries the fields of a partial update; nil means "leave unchanged".
type Patch struct {
	Name  *string
	Email *string
	Age   *int
}

type Repository interface {
	// Create inserts a user and returns it with generated id and timestamps,
	// which are equal on a fresh row. Returns ErrEmailTaken on a duplicate.
	Create(ctx context.Context, in NewUser) (domain.User, error)
	// GetByID returns ErrNotFound for a missing id.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Update rewrites only the supplied fields and refreshes UpdatedAt.
	// It never inserts; a missing id returns ErrNotFound.
	Update(ctx context.Context, id uuid.UUID, patch Patch) (domain.User, error)
	// Delete removes the user and, atomically, every post referencing it.
	// Deleting a missing id is a successful no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}
