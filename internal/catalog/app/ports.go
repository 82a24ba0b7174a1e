package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type ItemRepo interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	GetBySlug(ctx context.Context, slug string) (domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	// SearchByName matches items whose name contains query, case-sensitively.
	SearchByName(ctx context.Context, query string) ([]domain.Item, error)
}
