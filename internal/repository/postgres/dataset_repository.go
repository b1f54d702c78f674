package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aipaas/console/internal/domain"
	"github.com/aipaas/console/internal/pkg/database"
)

// DatasetRepository handles service dataset reads in PostgreSQL
type DatasetRepository struct {
	db *database.PostgresDB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *database.PostgresDB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Create inserts a dataset row
func (r *DatasetRepository) Create(ctx context.Context, ds *domain.ServiceDataset) error {
	query := `
		INSERT INTO service_datasets (id, service_id, name, description, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		ds.ID,
		ds.ServiceID,
		ds.Name,
		ds.Description,
		ds.Type,
		ds.CreatedAt,
		ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	return nil
}

// ListByService retrieves a page of datasets for a service plus the total count
func (r *DatasetRepository) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceDataset, int64, error) {
	var (
		datasets []domain.ServiceDataset
		total    int64
	)

	err := database.ReadTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM service_datasets WHERE service_id = $1`, serviceID).Scan(&total); err != nil {
			return fmt.Errorf("failed to count datasets: %w", err)
		}

		var err error
		datasets, err = datasetsByService(ctx, tx, serviceID, limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return datasets, total, nil
}

// datasetsByService fetches dataset rows through the given querier.
// A non-positive limit fetches all rows.
func datasetsByService(ctx context.Context, q database.Querier, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceDataset, error) {
	query := `
		SELECT id, service_id, name, description, type, created_at, updated_at
		FROM service_datasets
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
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	datasets := []domain.ServiceDataset{}
	for rows.Next() {
		var ds domain.ServiceDataset
		if err := rows.Scan(
			&ds.ID,
			&ds.ServiceID,
			&ds.Name,
			&ds.Description,
			&ds.Type,
			&ds.CreatedAt,
			&ds.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		datasets = append(datasets, ds)
	}

	return datasets, rows.Err()
}
