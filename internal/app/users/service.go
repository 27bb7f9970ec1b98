package users

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"inkwell-backend/internal/app/apperr"
	"inkwell-backend/internal/domain"
	"inkwell-backend/internal/ports/out/userrepo"
)

// Service validates user payloads, drives the repository and translates
// repository failures into the apperr taxonomy. Unexpected errors pass
// through untranslated for the HTTP adapter to log and mask.
type Service struct {
	repo userrepo.Repository
}

func NewService(repo userrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, payload map[string]any) (domain.User, error) {
	in, errs := validateCreate(payload)
	if len(errs) > 0 {
		return domain.User{}, apperr.Validation(errs)
	}
	u, err := s.repo.Create(ctx, in)
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailTaken) {
			return domain.User{}, apperr.EmailConflict()
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		// A malformed id cannot name an existing user.
		return domain.User{}, apperr.NotFound("User")
	}
	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.User{}, apperr.NotFound("User")
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, payload map[string]any) (domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, apperr.NotFound("User")
	}
	patch, errs := validatePatch(payload)
	if len(errs) > 0 {
		return domain.User{}, apperr.Validation(errs)
	}
	u, err := s.repo.Update(ctx, uid, patch)
	if err != nil {
		switch {
		case errors.Is(err, userrepo.ErrNotFound):
			return domain.User{}, apperr.NotFound("User")
		case errors.Is(err, userrepo.ErrEmailTaken):
			return domain.User{}, apperr.EmailConflict()
		}
		return domain.User{}, err
	}
	return u, nil
}

// Delete is idempotent: a missing or malformed id is a successful no-op.
// Dependent posts are removed by the store in the same transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	return s.repo.Delete(ctx, uid)
}
