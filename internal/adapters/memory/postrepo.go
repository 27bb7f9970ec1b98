package memory

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domain"
	"inkwell-backend/internal/ports/out/postrepo"
)

// PostRepo implements postrepo.Repository over the shared store.
type PostRepo struct {
	s *Store
}

func (r *PostRepo) Create(ctx context.Context, in postrepo.NewPost) (domain.Post, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[in.UserID]; !ok {
		return domain.Post{}, postrepo.ErrUserMissing
	}

	now := r.s.clock.Now()
	p := domain.Post{
		ID:        uuid.New(),
		Title:     in.Title,
		Content:   in.Content,
		UserID:    in.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.posts[p.ID] = p
	return p, nil
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return domain.Post{}, postrepo.ErrNotFound
	}
	return p, nil
}

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, p)
	}
	sortPosts(out)
	return out, nil
}

func (r *PostRepo) Update(ctx context.Context, id uuid.UUID, patch postrepo.Patch) (domain.Post, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return domain.Post{}, postrepo.ErrNotFound
	}
	if patch.UserID != nil {
		if _, ok := r.s.users[*patch.UserID]; !ok {
			return domain.Post{}, postrepo.ErrUserMissing
		}
		p.UserID = *patch.UserID
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	p.UpdatedAt = r.s.touch(p.UpdatedAt)
	r.s.posts[id] = p
	return p, nil
}

func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.posts, id) // idempotent
	return nil
}
