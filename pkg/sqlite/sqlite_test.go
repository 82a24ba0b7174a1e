package sqlite

import (
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestDSN(t *testing.T) {
	if got := dsn("shop.db"); got != "file:shop.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL" {
		t.Fatalf("unexpected dsn %q", got)
	}
	uri := "file:abc?mode=memory&cache=shared"
	if got := dsn(uri); got != uri {
		t.Fatalf("uri should pass through, got %q", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)) {
		t.Fatal("expected wrapped ErrDuplicatedKey to match")
	}
	if IsUniqueViolation(gorm.ErrRecordNotFound) {
		t.Fatal("record not found is not a unique violation")
	}
}
