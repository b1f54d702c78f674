package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aipaas/console/internal/domain"
	"github.com/aipaas/console/internal/pkg/database"
)

// PromptRepository handles service prompt reads in PostgreSQL
type PromptRepository struct {
	db *database.PostgresDB
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(db *database.PostgresDB) *PromptRepository {
	return &PromptRepository{db: db}
}

// Create inserts a prompt row
func (r *PromptRepository) Create(ctx context.Context, p *domain.ServicePrompt) error {
	query := `
		INSERT INTO service_prompts (id, service_id, name, content, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		p.ID,
		p.ServiceID,
		p.Name,
		p.Content,
		p.Type,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}

	return nil
}

// ListByService retrieves a page of prompts for a service plus the total count
func (r *PromptRepository) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServicePrompt, int64, error) {
	var (
		prompts []domain.ServicePrompt
		total   int64
	)

	err := database.ReadTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM service_prompts WHERE service_id = $1`, serviceID).Scan(&total); err != nil {
			return fmt.Errorf("failed to count prompts: %w", err)
		}

		var err error
		prompts, err = promptsByService(ctx, tx, serviceID, limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return prompts, total, nil
}

// promptsByService fetches prompt rows through the given querier.
// A non-positive limit fetches all rows.
func promptsByService(ctx context.Context, q database.Querier, serviceID uuid.UUID, limit, offset int) ([]domain.ServicePrompt, error) {
	query := `
		SELECT id, service_id, name, content, type, created_at, updated_at
		FROM service_prompts
		WHERE service_id = $1
		ORDER BY created_at, id
	`
	args := []any{serviceID}

	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	prompts := []domain.ServicePrompt{}
	for rows.Next() {
		var p domain.ServicePrompt
		if err := rows.Scan(
			&p.ID,
			&p.ServiceID,
			&p.Name,
			&p.Content,
			&p.Type,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		prompts = append(prompts, p)
	}

	return prompts, rows.Err()
}
