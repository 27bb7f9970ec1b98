package memory

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domain"
	"inkwell-backend/internal/ports/out/userrepo"
)

// UserRepo implements userrepo.Repository over the shared store.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(ctx context.Context, in userrepo.NewUser) (domain.User, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Uniqueness is decided under the store lock, the in-memory stand-in for
	// the database's unique index.
	if _, taken := r.s.byEmail[in.Email]; taken {
		return domain.User{}, userrepo.ErrEmailTaken
	}

	now := r.s.clock.Now()
	u := domain.User{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.users[u.ID] = u
	r.s.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sortUsers(out)
	return out, nil
}

func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, patch userrepo.Patch) (domain.User, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	if patch.Email != nil && *patch.Email != u.Email {
		if owner, taken := r.s.byEmail[*patch.Email]; taken && owner != id {
			return domain.User{}, userrepo.ErrEmailTaken
		}
		delete(r.s.byEmail, u.Email)
		u.Email = *patch.Email
		r.s.byEmail[u.Email] = id
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Age != nil {
		u.Age = *patch.Age
	}
	u.UpdatedAt = r.s.touch(u.UpdatedAt)
	r.s.users[id] = u
	return u, nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil // idempotent
	}
	delete(r.s.users, id)
	delete(r.s.byEmail, u.Email)
	// Cascade under the same lock: no observer can see the user gone while
	// its posts remain.
	for pid, p := range r.s.posts {
		if p.UserID == id {
			delete(r.s.posts, pid)
		}
	}
	return nil
}
