package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aipaas/console/internal/domain"
	"github.com/aipaas/console/internal/pkg/database"
)

// MonitoringRepository handles service monitoring reads in PostgreSQL
type MonitoringRepository struct {
	db *database.PostgresDB
}

// NewMonitoringRepository creates a new monitoring repository
func NewMonitoringRepository(db *database.PostgresDB) *MonitoringRepository {
	return &MonitoringRepository{db: db}
}

// Create inserts a monitoring row
func (r *MonitoringRepository) Create(ctx context.Context, m *domain.ServiceMonitoring) error {
	query := `
		INSERT INTO service_monitoring (id, service_id, name, type, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		m.ID,
		m.ServiceID,
		m.Name,
		m.Type,
		m.Config,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create monitoring record: %w", err)
	}

	return nil
}

// ListByService retrieves a page of monitoring records for a service plus the total count
func (r *MonitoringRepository) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceMonitoring, int64, error) {
	var (
		monitors []domain.ServiceMonitoring
		total    int64
	)

	err := database.ReadTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM service_monitoring WHERE service_id = $1`, serviceID).Scan(&total); err != nil {
			return fmt.Errorf("failed to count monitoring records: %w", err)
		}

		var err error
		monitors, err = monitorsByService(ctx, tx, serviceID, limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return monitors, total, nil
}

// monitorsByService fetches monitoring rows through the given querier.
// A non-positive limit fetches all rows.
func monitorsByService(ctx context.Context, q database.Querier, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceMonitoring, error) {
	query := `
		SELECT id, service_id, name, type, config, created_at, updated_at
		FROM service_monitoring
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
		return nil, fmt.Errorf("failed to list monitoring records: %w", err)
	}
	defer rows.Close()

	monitors := []domain.ServiceMonitoring{}
	for rows.Next() {
		var m domain.ServiceMonitoring
		if err := rows.Scan(
			&m.ID,
			&m.ServiceID,
			&m.Name,
			&m.Type,
			&m.Config,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monitoring record: %w", err)
		}
		monitors = append(monitors, m)
	}

	return monitors, rows.Err()
}
