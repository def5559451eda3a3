package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Yash39459/ai-mock-interview-webapp/pkg/model"
)

func (r *Repository) CreateUserSession(ctx context.Context, s *model.UserToken) (*model.UserToken, error) {
	const q = `
INSERT INTO sessions (user_token_id, user_id, refresh_token, expires_at, is_revoked, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING created_at
`
	row := r.db.QueryRow(ctx, q, s.UserTokenID, s.UserID, s.RefreshToken, s.ExpiresAt, s.IsRevoked)
	if err := row.Scan(&s.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

func (r *Repository) GetUserSession(ctx context.Context, tokenID string) (*model.UserToken, error) {
	const q = `
SELECT user_token_id, user_id, refresh_token, expires_at, is_revoked, created_at
FROM sessions WHERE user_token_id = $1
`
	var s model.UserToken
	row := r.db.QueryRow(ctx, q, tokenID)
	if err := row.Scan(&s.UserTokenID, &s.UserID, &s.RefreshToken, &s.ExpiresAt, &s.IsRevoked, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &s, nil
}

func (r *Repository) DeleteUserSession(ctx context.Context, tokenID string) error {
	const q = `DELETE FROM sessions WHERE user_token_id = $1`
	if _, err := r.db.Exec(ctx, q, tokenID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *Repository) RevokeUserSession(ctx context.Context, tokenID string) error {
	const q = `UPDATE sessions SET is_revoked = true WHERE user_token_id = $1`
	tag, err := r.db.Exec(ctx, q, tokenID)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
