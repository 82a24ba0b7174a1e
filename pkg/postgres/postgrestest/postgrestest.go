// Package postgrestest opens the integration-test database named by
// TEST_DATABASE_URL. Tests are skipped when it is unset. Packages share the
// database, so tests must create their own uniquely named rows.
package postgrestest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/dwikikusuma/storefront/pkg/postgres"
)

const EnvURL = "TEST_DATABASE_URL"

func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(EnvURL)
	if url == "" {
		t.Skipf("%s not set; skipping postgres integration test", EnvURL)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, postgres.Config{URL: url})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := postgres.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
