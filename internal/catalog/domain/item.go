package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type Item struct {
	ID          uuid.UUID
	Slug        string
	Name        string
	Description string
	Image       string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
}

// ValidSlug reports whether s is usable as an item URL segment.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
