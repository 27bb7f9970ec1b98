// Package postrepo defines the outbound port for post persistence.
package postrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"inkwell-backend/internal/domain"
)

var (
	// ErrNotFound signals that no post exists for the given id.
	ErrNotFound = errors.New("post not found")
	// ErrUserMissing signals a foreign-key violation: the referenced user
	// does not exist (anymore) at insert/update time.
	ErrUserMissing = errors.New("referenced user does not exist")
)

// NewPost is a validated create payload. The store assigns id and timestamps.
type NewPost struct {
	Title   string
	Content string
	UserID  uuid.UUID
}

// Patch carries the fields of a partial update; nil means "leave unchanged".
type Patch struct {
	Title   *string
	Content *string
	UserID  *uuid.UUID
}

type Repository interface {
	// Create inserts a post and returns it with generated id and timestamps.
	// Returns ErrUserMissing if UserID references no existing user.
	Create(ctx context.Context, in NewPost) (domain.Post, error)
	// GetByID returns ErrNotFound for a missing id.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	// Update rewrites only the supplied fields and refreshes UpdatedAt.
	// It never inserts; a missing id returns ErrNotFound.
	Update(ctx context.Context, id uuid.UUID, patch Patch) (domain.Post, error)
	// Delete removes the post. Deleting a missing id is a successful no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}
