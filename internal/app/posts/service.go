package posts

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"inkwell-backend/internal/app/apperr"
	"inkwell-backend/internal/domain"
	"inkwell-backend/internal/ports/out/postrepo"
)

// Service validates post payloads, drives the repository and translates
// repository failures into the apperr taxonomy.
type Service struct {
	repo postrepo.Repository
}

func NewService(repo postrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, payload map[string]any) (domain.Post, error) {
	in, errs := validateCreate(payload)
	if len(errs) > 0 {
		return domain.Post{}, apperr.Validation(errs)
	}
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		if errors.Is(err, postrepo.ErrUserMissing) {
			// Validation accepted the userId shape but the user is gone,
			// e.g. deleted between lookup and insert.
			return domain.Post{}, apperr.InvalidUserReference()
		}
		return domain.Post{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Post, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return domain.Post{}, apperr.NotFound("Post")
	}
	p, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, postrepo.ErrNotFound) {
			return domain.Post{}, apperr.NotFound("Post")
		}
		return domain.Post{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Post, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, payload map[string]any) (domain.Post, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return domain.Post{}, apperr.NotFound("Post")
	}
	patch, errs := validatePatch(payload)
	if len(errs) > 0 {
		return domain.Post{}, apperr.Validation(errs)
	}
	p, err := s.repo.Update(ctx, pid, patch)
	if err != nil {
		switch {
		case errors.Is(err, postrepo.ErrNotFound):
			return domain.Post{}, apperr.NotFound("Post")
		case errors.Is(err, postrepo.ErrUserMissing):
			return domain.Post{}, apperr.InvalidUserReference()
		}
		return domain.Post{}, err
	}
	return p, nil
}

// Delete is idempotent: a missing or malformed id is a successful no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	return s.repo.Delete(ctx, pid)
}
