package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ems-platform/employee-api/internal/core/domain"
)

// UserRepository is the PostgreSQL adapter for the credential store.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, email, role, created_at
		FROM users WHERE username = $1
	`

	var u domain.User
	dst := []any{&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role, &u.CreatedAt}
	if err := r.db.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	args := []any{user.Username, user.PasswordHash, user.Email, user.Role}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
