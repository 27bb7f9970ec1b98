package contracttest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/domain"
	"inkwell-backend/internal/ports/out/postrepo"
	"inkwell-backend/internal/ports/out/userrepo"
)

// ReposFactory returns user and post repositories backed by the same store,
// so cascade behaviour can be observed across both.
type ReposFactory func(t *testing.T) (userrepo.Repository, postrepo.Repository)

func RunPostRepos(t *testing.T, newRepos ReposFactory) {
	mustUser := func(t *testing.T, users userrepo.Repository) domain.User {
		t.Helper()
		u, err := users.Create(context.Background(), userrepo.NewUser{Name: "Author", Email: newEmail(), Age: 33})
		require.NoError(t, err)
		return u
	}

	t.Run("Should create a post referencing an existing user", func(t *testing.T) {
		users, posts := newRepos(t)
		ctx := context.Background()
		author := mustUser(t, users)

		p, err := posts.Create(ctx, postrepo.NewPost{Title: "T", Content: "C", UserID: author.ID})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.UUID{}, p.ID)
		assert.Equal(t, author.ID, p.UserID)
		assert.True(t, p.CreatedAt.Equal(p.UpdatedAt))
	})

	t.Run("Should reject a post for a missing user", func(t *testing.T) {
		_, posts := newRepos(t)

		_, err := posts.Create(context.Background(), postrepo.NewPost{Title: "T", Content: "C", UserID: uuid.New()})
		require.ErrorIs(t, err, postrepo.ErrUserMissing)
	})

	t.Run("Should apply only supplied fields and advance updatedAt", func(t *testing.T) {
		users, posts := newRepos(t)
		ctx := context.Background()
		author := mustUser(t, users)

		p, err := posts.Create(ctx, postrepo.NewPost{Title: "T", Content: "C", UserID: author.ID})
		require.NoError(t, err)

		title := "T2"
		got, err := posts.Update(ctx, p.ID, postrepo.Patch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "T2", got.Title)
		assert.Equal(t, "C", got.Content)
		assert.Equal(t, author.ID, got.UserID)
		assert.True(t, got.CreatedAt.Equal(p.CreatedAt))
		assert.True(t, got.UpdatedAt.After(p.UpdatedAt))
	})

	t.Run("Should reject an update onto a missing user", func(t *testing.T) {
		users, posts := newRepos(t)
		ctx := context.Background()
		author := mustUser(t, users)

		p, err := posts.Create(ctx, postrepo.NewPost{Title: "T", Content: "C", UserID: author.ID})
		require.NoError(t, err)

		ghost := uuid.New()
		_, err = posts.Update(ctx, p.ID, postrepo.Patch{UserID: &ghost})
		require.ErrorIs(t, err, postrepo.ErrUserMissing)
	})

	t.Run("Should not insert on update of a missing id", func(t *testing.T) {
		_, posts := newRepos(t)
		title := "T"

		_, err := posts.Update(context.Background(), uuid.New(), postrepo.Patch{Title: &title})
		require.ErrorIs(t, err, postrepo.ErrNotFound)
	})

	t.Run("Should cascade posts when their user is deleted", func(t *testing.T) {
		users, posts := newRepos(t)
		ctx := context.Background()
		doomed := mustUser(t, users)
		survivor := mustUser(t, users)

		p1, err := posts.Create(ctx, postrepo.NewPost{Title: "P1", Content: "C", UserID: doomed.ID})
		require.NoError(t, err)
		p2, err := posts.Create(ctx, postrepo.NewPost{Title: "P2", Content: "C", UserID: doomed.ID})
		require.NoError(t, err)
		kept, err := posts.Create(ctx, postrepo.NewPost{Title: "K", Content: "C", UserID: survivor.ID})
		require.NoError(t, err)

		require.NoError(t, users.Delete(ctx, doomed.ID))

		_, err = posts.GetByID(ctx, p1.ID)
		assert.ErrorIs(t, err, postrepo.ErrNotFound)
		_, err = posts.GetByID(ctx, p2.ID)
		assert.ErrorIs(t, err, postrepo.ErrNotFound)

		got, err := posts.GetByID(ctx, kept.ID)
		require.NoError(t, err, "other users' posts must survive the cascade")
		assert.Equal(t, kept, got)
	})

	t.Run("Should delete idempotently", func(t *testing.T) {
		users, posts := newRepos(t)
		ctx := context.Background()
		author := mustUser(t, users)

		p, err := posts.Create(ctx, postrepo.NewPost{Title: "T", Content: "C", UserID: author.ID})
		require.NoError(t, err)

		require.NoError(t, posts.Delete(ctx, p.ID))
		require.NoError(t, posts.Delete(ctx, p.ID))
		require.NoError(t, posts.Delete(ctx, uuid.New()))
	})
}
