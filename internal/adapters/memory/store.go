// Package memory is an in-memory implementation of the repository ports,
// used by handler tests and as a database-free dev fallback. Users and posts
// share one store so that cascade delete holds a single lock, mirroring the
// single-transaction guarantee of the Postgres adapter.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell-backend/internal/domain"
)

// Store holds all entities behind one mutex. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	clock   Clock
	users   map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
	posts   map[uuid.UUID]domain.Post
}

func NewStore() *Store {
	return NewStoreWithClock(systemClock{})
}

func NewStoreWithClock(c Clock) *Store {
	return &Store{
		clock:   c,
		users:   make(map[uuid.UUID]domain.User),
		byEmail: make(map[string]uuid.UUID),
		posts:   make(map[uuid.UUID]domain.Post),
	}
}

// Users returns the userrepo.Repository view of the store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Posts returns the postrepo.Repository view of the store.
func (s *Store) Posts() *PostRepo { return &PostRepo{s: s} }

// touch returns a timestamp strictly after prev, so updated_at increases
// even when the clock has not advanced between two mutations.
func (s *Store) touch(prev time.Time) time.Time {
	now := s.clock.Now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func sortUsers(us []domain.User) {
	sort.Slice(us, func(i, j int) bool {
		a, b := us[i], us[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

func sortPosts(ps []domain.Post) {
	sort.Slice(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}
