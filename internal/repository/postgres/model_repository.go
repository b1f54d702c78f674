package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aipaas/console/internal/domain"
	"github.com/aipaas/console/internal/pkg/database"
)

// ModelRepository handles service model reads in PostgreSQL
type ModelRepository struct {
	db *database.PostgresDB
}

// NewModelRepository creates a new model repository
func NewModelRepository(db *database.PostgresDB) *ModelRepository {
	return &ModelRepository{db: db}
}

// Create inserts a model row
func (r *ModelRepository) Create(ctx context.Context, m *domain.ServiceModel) error {
	query := `
		INSERT INTO service_models (id, service_id, name, description, type, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		m.ID,
		m.ServiceID,
		m.Name,
		m.Description,
		m.Type,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}

	return nil
}

// ListByService retrieves a page of models for a service plus the total count
func (r *ModelRepository) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceModel, int64, error) {
	var (
		models []domain.ServiceModel
		total  int64
	)

	err := database.ReadTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM service_models WHERE service_id = $1`, serviceID).Scan(&total); err != nil {
			return fmt.Errorf("failed to count models: %w", err)
		}

		var err error
		models, err = modelsByService(ctx, tx, serviceID, limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return models, total, nil
}

// modelsByService fetches model rows through the given querier.
// A non-positive limit fetches all rows.
func modelsByService(ctx context.Context, q database.Querier, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceModel, error) {
	query := `
		SELECT id, service_id, name, description, type, version, created_at, updated_at
		FROM service_models
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
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	models := []domain.ServiceModel{}
	for rows.Next() {
		var m domain.ServiceModel
		if err := rows.Scan(
			&m.ID,
			&m.ServiceID,
			&m.Name,
			&m.Description,
			&m.Type,
			&m.Version,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		models = append(models, m)
	}

	return models, rows.Err()
}
