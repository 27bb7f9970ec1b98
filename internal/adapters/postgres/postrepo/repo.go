package postrepo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"inkwell-backend/internal/adapters/postgres"
	"inkwell-backend/internal/domain"
	postrepoport "inkwell-backend/internal/ports/out/postrepo"
)

const postColumns = "id, title, content, user_id, created_at, updated_at"

// DB is the minimal pgx surface the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo is the Postgres implementation of postrepo.Repository. Referential
// integrity of user_id rides the posts_user_id_fkey foreign key.
type Repo struct {
	db DB
}

func NewRepo(db DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, in postrepoport.NewPost) (domain.Post, error) {
	query, args, err := squirrel.Insert("posts").
		Columns("title", "content", "user_id").
		Values(in.Title, in.Content, in.UserID).
		Suffix("RETURNING " + postColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.Post{}, fmt.Errorf("building insert query: %w", err)
	}
	var p domain.Post
	if err := pgxscan.Get(ctx, r.db, &p, query, args...); err != nil {
		if postgres.IsConstraintViolation(err, postgres.ForeignKeyViolationCode, postgres.PostUserFKConstraint) {
			return domain.Post{}, postrepoport.ErrUserMissing
		}
		return domain.Post{}, fmt.Errorf("inserting post: %w", err)
	}
	return p, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	query, args, err := squirrel.Select(postColumns).
		From("posts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.Post{}, fmt.Errorf("building select query: %w", err)
	}
	var p domain.Post
	if err := pgxscan.Get(ctx, r.db, &p, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return domain.Post{}, postrepoport.ErrNotFound
		}
		return domain.Post{}, fmt.Errorf("scanning post: %w", err)
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Post, error) {
	query, args, err := squirrel.Select(postColumns).
		From("posts").
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	posts := []domain.Post{}
	if err := pgxscan.Select(ctx, r.db, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("scanning posts: %w", err)
	}
	return posts, nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch postrepoport.Patch) (domain.Post, error) {
	qb := squirrel.Update("posts").
		Set("updated_at", squirrel.Expr("clock_timestamp()"))
	if patch.Title != nil {
		qb = qb.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		qb = qb.Set("content", *patch.Content)
	}
	if patch.UserID != nil {
		qb = qb.Set("user_id", *patch.UserID)
	}
	query, args, err := qb.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + postColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.Post{}, fmt.Errorf("building update query: %w", err)
	}
	var p domain.Post
	if err := pgxscan.Get(ctx, r.db, &p, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return domain.Post{}, postrepoport.ErrNotFound
		}
		if postgres.IsConstraintViolation(err, postgres.ForeignKeyViolationCode, postgres.PostUserFKConstraint) {
			return domain.Post{}, postrepoport.ErrUserMissing
		}
		return domain.Post{}, fmt.Errorf("updating post: %w", err)
	}
	return p, nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.Delete("posts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}
