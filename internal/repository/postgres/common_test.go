package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/aipaas/console/internal/config"
	"github.com/aipaas/console/internal/pkg/database"
)

// getTestDB returns a database connection for integration tests.
// Returns nil if the database is not available (skips tests).
func getTestDB(t *testing.T) *database.PostgresDB {
	if os.Getenv("POSTGRES_TEST_HOST") == "" {
		t.Skip("Skipping integration test: POSTGRES_TEST_HOST not set")
		return nil
	}

	cfg := config.PostgresConfig{
		Host:     os.Getenv("POSTGRES_TEST_HOST"),
		Port:     5432,
		User:     os.Getenv("POSTGRES_TEST_USER"),
		Password: os.Getenv("POSTGRES_TEST_PASS"),
		Database: os.Getenv("POSTGRES_TEST_DB"),
		SSLMode:  "disable",
		MaxConns: 5,
		MinConns: 1,
	}

	if cfg.Database == "" {
		cfg.Database = "test_console"
	}
	if cfg.User == "" {
		cfg.User = "postgres"
	}

	db, err := database.NewPostgres(context.Background(), cfg)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to PostgreSQL: %v", err)
		return nil
	}

	return db
}

// cleanupServices removes test services and their child rows from the database
func cleanupServices(t *testing.T, db *database.PostgresDB, names ...string) {
	ctx := context.Background()
	for _, name := range names {
		for _, child := range []string{"service_workflows", "service_datasets", "service_models", "service_prompts", "service_monitoring"} {
			_, _ = db.Pool.Exec(ctx, "DELETE FROM "+child+" WHERE service_id IN (SELECT id FROM services WHERE name = $1)", name)
		}
		_, _ = db.Pool.Exec(ctx, "DELETE FROM services WHERE name = $1", name)
	}
}
