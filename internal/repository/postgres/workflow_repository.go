package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aipaas/console/internal/domain"
	"github.com/aipaas/console/internal/pkg/database"
)

// WorkflowRepository handles service workflow reads in PostgreSQL.
// Workflow rows are written by the pipeline subsystem, so besides Create
// (used for seeding and tests) this repository only reads.
type WorkflowRepository struct {
	db *database.PostgresDB
}

// NewWorkflowRepository creates a new workflow repository
func NewWorkflowRepository(db *database.PostgresDB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

// Create inserts a workflow row
func (r *WorkflowRepository) Create(ctx context.Context, wf *domain.ServiceWorkflow) error {
	query := `
		INSERT INTO service_workflows (id, service_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		wf.ID,
		wf.ServiceID,
		wf.Name,
		wf.Description,
		wf.CreatedAt,
		wf.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workflow: %w", err)
	}

	return nil
}

// ListByService retrieves a page of workflows for a service plus the total count
func (r *WorkflowRepository) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceWorkflow, int64, error) {
	var (
		workflows []domain.ServiceWorkflow
		total     int64
	)

	err := database.ReadTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM service_workflows WHERE service_id = $1`, serviceID).Scan(&total); err != nil {
			return fmt.Errorf("failed to count workflows: %w", err)
		}

		var err error
		workflows, err = workflowsByService(ctx, tx, serviceID, limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return workflows, total, nil
}

// workflowsByService fetches workflow rows through the given querier.
// A non-positive limit fetches all rows.
func workflowsByService(ctx context.Context, q database.Querier, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceWorkflow, error) {
	query := `
		SELECT id, service_id, name, description, created_at, updated_at
		FROM service_workflows
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
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	workflows := []domain.ServiceWorkflow{}
	for rows.Next() {
		var wf domain.ServiceWorkflow
		if err := rows.Scan(
			&wf.ID,
			&wf.ServiceID,
			&wf.Name,
			&wf.Description,
			&wf.CreatedAt,
			&wf.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}
		workflows = append(workflows, wf)
	}

	return workflows, rows.Err()
}
