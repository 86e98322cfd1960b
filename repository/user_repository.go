package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-service/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// UserRepository stores accounts in the users table
type UserRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewUserRepository creates a user repository over an open connection
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// ExistsByEmail reports whether an account uses email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := r.sb.Select("COUNT(1)").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// GetByEmail returns the account for email, including its password hash
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	query, args, err := r.sb.Select("id", "email", "password").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("build get query: %w", err)
	}

	var user models.User
	err = r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Create inserts an account. The UNIQUE index on email turns a concurrent
// duplicate into ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (models.User, error) {
	query, args, err := r.sb.Insert("users").
		Columns("email", "password").
		Values(email, passwordHash).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("build insert: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return models.User{ID: id, Email: email, Password: passwordHash}, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
