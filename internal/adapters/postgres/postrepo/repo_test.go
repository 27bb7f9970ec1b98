package postrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postrepoport "inkwell-backend/internal/ports/out/postrepo"
)

var postCols = []string{"id", "title", "content", "user_id", "created_at", "updated_at"}

func TestRepo_Create(t *testing.T) {
	t.Run("Should return the stored row with generated id and timestamps", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := NewRepo(mock)

		id := uuid.New()
		author := uuid.New()
		now := time.Now().UTC().Truncate(time.Microsecond)
		mock.ExpectQuery("INSERT INTO posts").
			WithArgs("T", "C", author).
			WillReturnRows(pgxmock.NewRows(postCols).AddRow(id, "T", "C", author, now, now))

		p, err := repo.Create(context.Background(), postrepoport.NewPost{Title: "T", Content: "C", UserID: author})
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, author, p.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should translate a posts_user_id_fkey violation to ErrUserMissing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := NewRepo(mock)

		author := uuid.New()
		mock.ExpectQuery("INSERT INTO posts").
			WithArgs("T", "C", author).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "posts_user_id_fkey"})

		_, err = repo.Create(context.Background(), postrepoport.NewPost{Title: "T", Content: "C", UserID: author})
		require.ErrorIs(t, err, postrepoport.ErrUserMissing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepo_Update(t *testing.T) {
	t.Run("Should set only supplied fields plus updated_at", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := NewRepo(mock)

		id := uuid.New()
		author := uuid.New()
		created := time.Now().UTC().Add(-time.Hour)
		updated := time.Now().UTC()
		title := "T2"
		mock.ExpectQuery(`UPDATE posts SET updated_at = clock_timestamp\(\), title = \$1 WHERE id = \$2`).
			WithArgs("T2", id).
			WillReturnRows(pgxmock.NewRows(postCols).AddRow(id, "T2", "C", author, created, updated))

		p, err := repo.Update(context.Background(), id, postrepoport.Patch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "T2", p.Title)
		assert.Equal(t, "C", p.Content)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should return ErrNotFound for a missing id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := NewRepo(mock)

		id := uuid.New()
		title := "T"
		mock.ExpectQuery("UPDATE posts").
			WithArgs("T", id).
			WillReturnRows(pgxmock.NewRows(postCols))

		_, err = repo.Update(context.Background(), id, postrepoport.Patch{Title: &title})
		require.ErrorIs(t, err, postrepoport.ErrNotFound)
	})
}

func TestRepo_Delete(t *testing.T) {
	t.Run("Should succeed even when no row matched", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := NewRepo(mock)

		id := uuid.New()
		mock.ExpectExec("DELETE FROM posts").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.NoError(t, repo.Delete(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
