package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartRepo interface {
	// Insert creates a line. It returns ErrDuplicateEntry when the store's
	// unique (user, item) constraint rejects it.
	Insert(ctx context.Context, line domain.CartLine) (domain.CartLine, error)
	ListLines(ctx context.Context, userID uuid.UUID) ([]domain.Line, error)
	// DeleteByItemSlug removes the user's line for the item and returns the
	// item name, or ErrNotFound.
	DeleteByItemSlug(ctx context.Context, userID uuid.UUID, slug string) (string, error)
}

type CatalogReader interface {
	GetItem(ctx context.Context, slug string) (Item, error)
}

type Item struct {
	ID    uuid.UUID
	Slug  string
	Name  string
	Price decimal.Decimal
}
