package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Yash39459/ai-mock-interview-webapp/pkg/model"
)

// CreateInterview inserts a new interview document. Timestamps are assigned
// server-side and written back into in.
func (r *Repository) CreateInterview(ctx context.Context, in *model.Interview) error {
	const q = `
INSERT INTO interviews (
	id, user_id, position, description, experience, tech_stack, questions, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
RETURNING created_at, updated_at
`
	row := r.db.QueryRow(ctx, q,
		in.ID, in.UserID, in.Position, in.Description, in.Experience, in.TechStack, in.Questions,
	)
	if err := row.Scan(&in.CreatedAt, &in.UpdatedAt); err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

// UpdateInterview merges new field values and regenerated questions into an
// existing document owned by userID; updated_at is server-assigned.
func (r *Repository) UpdateInterview(ctx context.Context, id, userID uuid.UUID, in *model.Interview) error {
	const q = `
UPDATE interviews
SET position = $1, description = $2, experience = $3, tech_stack = $4, questions = $5, updated_at = now()
WHERE id = $6 AND user_id = $7
`
	tag, err := r.db.Exec(ctx, q,
		in.Position, in.Description, in.Experience, in.TechStack, in.Questions, id, userID,
	)
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetInterviewByID(ctx context.Context, id uuid.UUID) (*model.Interview, error) {
	const q = `
SELECT id, user_id, position, description, experience, tech_stack, questions, created_at, updated_at
FROM interviews WHERE id = $1
`
	var in model.Interview
	row := r.db.QueryRow(ctx, q, id)
	err := row.Scan(
		&in.ID, &in.UserID, &in.Position, &in.Description, &in.Experience,
		&in.TechStack, &in.Questions, &in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get interview: %w", err)
	}
	return &in, nil
}

func (r *Repository) ListInterviewsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Interview, int, error) {
	var total int
	const countQ = `SELECT COUNT(1) FROM interviews WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, countQ, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count interviews: %w", err)
	}

	const q = `
SELECT id, user_id, position, description, experience, tech_stack, questions, created_at, updated_at
FROM interviews WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`
	rows, err := r.db.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	out := make([]model.Interview, 0, limit)
	for rows.Next() {
		var in model.Interview
		if err := rows.Scan(
			&in.ID, &in.UserID, &in.Position, &in.Description, &in.Experience,
			&in.TechStack, &in.Questions, &in.CreatedAt, &in.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, in)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, total, nil
}

func (r *Repository) DeleteInterview(ctx context.Context, id, userID uuid.UUID) error {
	const q = `DELETE FROM interviews WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, q, id, userID)
	if err != nil {
		return fmt.Errorf("delete interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
