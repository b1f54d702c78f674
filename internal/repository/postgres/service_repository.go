package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aipaas/console/internal/domain"
	"github.com/aipaas/console/internal/pkg/database"
	apperrors "github.com/aipaas/console/internal/pkg/errors"
)

// ServiceRepository handles service data operations in PostgreSQL
type ServiceRepository struct {
	db *database.PostgresDB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *database.PostgresDB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = "id, name, description, tag, status, created_at, updated_at, deleted_at"

// Create creates a new service
func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	query := `
		INSERT INTO services (id, name, description, tag, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		svc.ID,
		svc.Name,
		svc.Description,
		svc.Tag,
		svc.Status,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("service name already in use")
		}
		return fmt.Errorf("failed to create service: %w", err)
	}

	return nil
}

// GetByID retrieves a live service by ID. Soft-deleted rows are not found.
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return getService(ctx, r.db.Pool, id)
}

// GetDetail retrieves a live service together with all of its child
// collections, fetched inside one read-only transaction.
func (r *ServiceRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
	var detail *domain.ServiceDetail

	err := database.ReadTransaction(ctx, r.db, func(tx pgx.Tx) error {
		svc, err := getService(ctx, tx, id)
		if err != nil {
			return err
		}

		workflows, err := workflowsByService(ctx, tx, id, 0, 0)
		if err != nil {
			return err
		}
		datasets, err := datasetsByService(ctx, tx, id, 0, 0)
		if err != nil {
			return err
		}
		models, err := modelsByService(ctx, tx, id, 0, 0)
		if err != nil {
			return err
		}
		prompts, err := promptsByService(ctx, tx, id, 0, 0)
		if err != nil {
			return err
		}
		monitors, err := monitorsByService(ctx, tx, id, 0, 0)
		if err != nil {
			return err
		}

		detail = &domain.ServiceDetail{
			Service:    *svc,
			Workflows:  workflows,
			Datasets:   datasets,
			Models:     models,
			Prompts:    prompts,
			Monitoring: monitors,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// List retrieves a page of live services plus the total match count.
// The count and page queries share one read-only transaction.
func (r *ServiceRepository) List(ctx context.Context, filter domain.ServiceFilter, limit, offset int) ([]domain.Service, int64, error) {
	where := `WHERE status != 'deleted'`
	args := []any{}

	if filter.Search != "" {
		where += ` AND (name ILIKE $1 OR description ILIKE $1)`
		args = append(args, "%"+filter.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM services ` + where
	pageQuery := fmt.Sprintf(`
		SELECT %s
		FROM services
		%s
		ORDER BY created_at, id
		LIMIT $%d OFFSET $%d
	`, serviceColumns, where, len(args)+1, len(args)+2)

	var (
		services = []domain.Service{}
		total    int64
	)

	err := database.ReadTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count services: %w", err)
		}

		rows, err := tx.Query(ctx, pageQuery, append(args, limit, offset)...)
		if err != nil {
			return fmt.Errorf("failed to list services: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			svc, err := scanService(rows)
			if err != nil {
				return fmt.Errorf("failed to scan service: %w", err)
			}
			services = append(services, *svc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

// Update updates the mutable fields of a live service
func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	query := `
		UPDATE services
		SET name = $2, description = $3, tag = $4, updated_at = $5
		WHERE id = $1 AND status != 'deleted'
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		svc.ID,
		svc.Name,
		svc.Description,
		svc.Tag,
		svc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("service name already in use")
		}
		return fmt.Errorf("failed to update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("service")
	}

	return nil
}

// SoftDelete marks a live service as deleted. The row persists.
func (r *ServiceRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE services
		SET status = 'deleted', deleted_at = $2, updated_at = $2
		WHERE id = $1 AND status != 'deleted'
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("service")
	}

	return nil
}

// Exists reports whether a live service with the given ID exists
func (r *ServiceRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM services WHERE id = $1 AND status != 'deleted')`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check service: %w", err)
	}

	return exists, nil
}

// getService fetches a single live service row through the given querier.
func getService(ctx context.Context, q database.Querier, id uuid.UUID) (*domain.Service, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM services
		WHERE id = $1 AND status != 'deleted'
	`, serviceColumns)

	svc, err := scanService(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("service")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return svc, nil
}

// scanService scans a service row in serviceColumns order.
func scanService(row pgx.Row) (*domain.Service, error) {
	var svc domain.Service
	err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.Tag,
		&svc.Status,
		&svc.CreatedAt,
		&svc.UpdatedAt,
		&svc.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// isUniqueViolation reports whether the error is a Postgres unique-constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
