// Package contracttest defines behaviour suites every repository
// implementation must pass. The memory and Postgres adapters both run them,
// which keeps the two stores interchangeable.
package contracttest

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/ports/out/userrepo"
)

// UserRepoFactory returns a ready repository for one subtest.
type UserRepoFactory func(t *testing.T) userrepo.Repository

func newEmail() string {
	// Unique per call so suites can share a database.
	return uuid.NewString() + "@contract.test"
}

func RunUserRepo(t *testing.T, newRepo UserRepoFactory) {
	t.Run("Should assign id and equal timestamps on create", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u, err := repo.Create(ctx, userrepo.NewUser{Name: "Ann", Email: newEmail(), Age: 30})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.UUID{}, u.ID)
		assert.Equal(t, "Ann", u.Name)
		assert.Equal(t, 30, u.Age)
		assert.False(t, u.CreatedAt.IsZero())
		assert.True(t, u.CreatedAt.Equal(u.UpdatedAt), "createdAt %v != updatedAt %v", u.CreatedAt, u.UpdatedAt)
	})

	t.Run("Should reject a duplicate email and leave the original intact", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		email := newEmail()

		orig, err := repo.Create(ctx, userrepo.NewUser{Name: "Ann", Email: email, Age: 30})
		require.NoError(t, err)

		_, err = repo.Create(ctx, userrepo.NewUser{Name: "Impostor", Email: email, Age: 44})
		require.ErrorIs(t, err, userrepo.ErrEmailTaken)

		got, err := repo.GetByID(ctx, orig.ID)
		require.NoError(t, err)
		assert.Equal(t, orig, got)
	})

	t.Run("Should serialize concurrent creates with the same email", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		email := newEmail()

		const n = 8
		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = repo.Create(ctx, userrepo.NewUser{Name: "Racer", Email: email, Age: 20})
			}(i)
		}
		wg.Wait()

		var ok, taken int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, userrepo.ErrEmailTaken):
				taken++
			}
		}
		assert.Equal(t, 1, ok, "exactly one concurrent create must win")
		assert.Equal(t, n-1, taken)
	})

	t.Run("Should return ErrNotFound for a missing id", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(context.Background(), uuid.New())
		require.ErrorIs(t, err, userrepo.ErrNotFound)
	})

	t.Run("Should apply only supplied fields and advance updatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u, err := repo.Create(ctx, userrepo.NewUser{Name: "Ann", Email: newEmail(), Age: 30})
		require.NoError(t, err)

		age := 31
		got, err := repo.Update(ctx, u.ID, userrepo.Patch{Age: &age})
		require.NoError(t, err)
		assert.Equal(t, u.Name, got.Name)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, 31, got.Age)
		assert.True(t, got.CreatedAt.Equal(u.CreatedAt), "createdAt must be immutable")
		assert.True(t, got.UpdatedAt.After(u.UpdatedAt), "updatedAt must strictly increase")
	})

	t.Run("Should not insert on update of a missing id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		id := uuid.New()

		name := "Ghost"
		_, err := repo.Update(ctx, id, userrepo.Patch{Name: &name})
		require.ErrorIs(t, err, userrepo.ErrNotFound)

		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, userrepo.ErrNotFound, "update must never create a row")
	})

	t.Run("Should reject an update onto a taken email", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		taken := newEmail()

		_, err := repo.Create(ctx, userrepo.NewUser{Name: "Holder", Email: taken, Age: 40})
		require.NoError(t, err)
		u, err := repo.Create(ctx, userrepo.NewUser{Name: "Mover", Email: newEmail(), Age: 41})
		require.NoError(t, err)

		_, err = repo.Update(ctx, u.ID, userrepo.Patch{Email: &taken})
		require.ErrorIs(t, err, userrepo.ErrEmailTaken)
	})

	t.Run("Should delete idempotently", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u, err := repo.Create(ctx, userrepo.NewUser{Name: "Ann", Email: newEmail(), Age: 30})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, u.ID))
		require.NoError(t, repo.Delete(ctx, u.ID), "repeat delete must succeed")
		require.NoError(t, repo.Delete(ctx, uuid.New()), "deleting a never-existing id must succeed")

		_, err = repo.GetByID(ctx, u.ID)
		assert.ErrorIs(t, err, userrepo.ErrNotFound)
	})

	t.Run("Should list created users", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, err := repo.Create(ctx, userrepo.NewUser{Name: "A", Email: newEmail(), Age: 20})
		require.NoError(t, err)
		b, err := repo.Create(ctx, userrepo.NewUser{Name: "B", Email: newEmail(), Age: 21})
		require.NoError(t, err)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		ids := make(map[uuid.UUID]bool, len(all))
		for _, u := range all {
			ids[u.ID] = true
		}
		assert.True(t, ids[a.ID])
		assert.True(t, ids[b.ID])
	})
}
