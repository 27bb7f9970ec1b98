package userrepo

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
	userrepoport "inkwell-backend/internal/ports/out/userrepo"
)

const userColumns = "id, name, email, age, created_at, updated_at"

// DB is the minimal pgx surface the repository needs. *pgxpool.Pool satisfies
// it, as do pgxmock pools in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo is the Postgres implementation of userrepo.Repository. Uniqueness of
// email rides the unique_email_idx index: concurrent duplicate creates are
// serialized by the database, never by an application-level check.
type Repo struct {
	db DB
}

func NewRepo(db DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, in userrepoport.NewUser) (domain.User, error) {
	query, args, err := squirrel.Insert("users").
		Columns("name", "email", "age").
		Values(in.Name, in.Email, in.Age).
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("building insert query: %w", err)
	}
	var u domain.User
	if err := pgxscan.Get(ctx, r.db, &u, query, args...); err != nil {
		if postgres.IsConstraintViolation(err, postgres.UniqueViolationCode, postgres.UniqueEmailConstraint) {
			return domain.User{}, userrepoport.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	query, args, err := squirrel.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("building select query: %w", err)
	}
	var u domain.User
	if err := pgxscan.Get(ctx, r.db, &u, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return domain.User{}, userrepoport.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	query, args, err := squirrel.Select(userColumns).
		From("users").
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	users := []domain.User{}
	if err := pgxscan.Select(ctx, r.db, &users, query, args...); err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}
	return users, nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch userrepoport.Patch) (domain.User, error) {
	// clock_timestamp() rather than now(): updated_at must strictly increase
	// even for updates inside the same transaction timestamp.
	qb := squirrel.Update("users").
		Set("updated_at", squirrel.Expr("clock_timestamp()"))
	if patch.Name != nil {
		qb = qb.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		qb = qb.Set("email", *patch.Email)
	}
	if patch.Age != nil {
		qb = qb.Set("age", *patch.Age)
	}
	query, args, err := qb.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("building update query: %w", err)
	}
	var u domain.User
	if err := pgxscan.Get(ctx, r.db, &u, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return domain.User{}, userrepoport.ErrNotFound
		}
		if postgres.IsConstraintViolation(err, postgres.UniqueViolationCode, postgres.UniqueEmailConstraint) {
			return domain.User{}, userrepoport.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("updating user: %w", err)
	}
	return u, nil
}

// Delete removes the user; dependent posts go with it via the ON DELETE
// CASCADE foreign key, so the whole removal is one atomic statement.
// Deleting a missing id succeeds.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.Delete("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
