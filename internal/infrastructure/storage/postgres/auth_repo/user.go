// Package auth_repo persists web users in the auth database.
package auth_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ventasapi/internal/core/apperror"
	"ventasapi/internal/domain/auth"
)

const usersTable = "usuarios_web"

var userColumns = []string{
	"id", "usuario", "nombre", "apellido", "password_hash",
	"rol", "estatus", "sucursal_registro", "ultimo_login", "creado_en",
}

// UserRepo implements auth.Repository.
type UserRepo struct {
	db      *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewUserRepo creates a user repository on the auth pool.
func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *UserRepo) getOne(ctx context.Context, pred squirrel.Sqlizer, key any) (*auth.User, error) {
	query, args, err := r.builder.
		Select(userColumns...).
		From(usersTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var user auth.User
	if err := pgxscan.Get(ctx, r.db, &user, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get user: %w", err))
	}
	return &user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"usuario": username}, username)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query, args, err := r.builder.
		Select("1").
		From(usersTable).
		Where(squirrel.Eq{"usuario": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, apperror.NewInternal(err)
	}

	var one int
	if err := pgxscan.Get(ctx, r.db, &one, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperror.NewDatabase(fmt.Errorf("user exists: %w", err))
	}
	return true, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	query, args, err := r.builder.Select("COUNT(*)").From(usersTable).ToSql()
	if err != nil {
		return 0, apperror.NewInternal(err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.db, &count, query, args...); err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("count users: %w", err))
	}
	return count, nil
}

func (r *UserRepo) Create(ctx context.Context, user *auth.User) (int64, error) {
	query, args, err := r.builder.
		Insert(usersTable).
		Columns("usuario", "nombre", "apellido", "password_hash", "rol", "estatus", "sucursal_registro", "creado_en").
		Values(user.Username, user.FirstName, user.LastName, user.PasswordHash,
			user.Role, user.Status, user.Branch, time.Now().UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, apperror.NewInternal(err)
	}

	var id int64
	if err := pgxscan.Get(ctx, r.db, &id, query, args...); err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("create user: %w", err))
	}
	return id, nil
}

// List returns all users, pending first so approvals surface on top.
func (r *UserRepo) List(ctx context.Context) ([]auth.User, error) {
	query, args, err := r.builder.
		Select(userColumns...).
		From(usersTable).
		OrderBy(
			fmt.Sprintf("CASE estatus WHEN '%s' THEN 0 ELSE 1 END", auth.StatusPending),
			"creado_en DESC",
		).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	users := []auth.User{}
	if err := pgxscan.Select(ctx, r.db, &users, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list users: %w", err))
	}
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, upd auth.UserUpdate) error {
	q := r.builder.Update(usersTable).Where(squirrel.Eq{"id": id})
	if upd.FirstName != nil {
		q = q.Set("nombre", *upd.FirstName)
	}
	if upd.LastName != nil {
		q = q.Set("apellido", *upd.LastName)
	}
	if upd.Role != nil {
		q = q.Set("rol", *upd.Role)
	}
	if upd.Status != nil {
		q = q.Set("estatus", *upd.Status)
	}
	if upd.Branch != nil {
		q = q.Set("sucursal_registro", *upd.Branch)
	}
	if upd.PasswordHash != nil {
		q = q.Set("password_hash", *upd.PasswordHash)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", id)
	}
	return nil
}

func (r *UserRepo) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	query, args, err := r.builder.
		Update(usersTable).
		Set("ultimo_login", at.UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("record login: %w", err))
	}
	return nil
}
