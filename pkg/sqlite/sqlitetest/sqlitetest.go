// Package sqlitetest opens a private in-memory sqlite database per test.
package sqlitetest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dwikikusuma/storefront/pkg/sqlite"
)

func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	db, err := sqlite.Open(sqlite.Config{
		DSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		if err := sqlite.Migrate(db, models...); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return db
}
