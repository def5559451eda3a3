package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Yash39459/ai-mock-interview-webapp/pkg/model"
)

// CreateUser inserts a new user, assigning its id and timestamps.
func (r *Repository) CreateUser(ctx context.Context, u *model.User) error {
	u.UserID = uuid.New()
	const q = `
INSERT INTO users (user_id, name, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
RETURNING created_at, updated_at
`
	row := r.db.QueryRow(ctx, q, u.UserID, u.Name, u.Email, u.PasswordHash)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		// 23505 is unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT user_id, name, email, password_hash, created_at, updated_at
FROM users WHERE email = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, email)
	if err := row.Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user by email: %w", err)
	}
	return &u, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `
SELECT user_id, name, email, password_hash, created_at, updated_at
FROM users WHERE user_id = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user by id: %w", err)
	}
	return &u, nil
}
