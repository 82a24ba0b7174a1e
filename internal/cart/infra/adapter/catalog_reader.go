package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetItem(ctx context.Context, slug string) (cartapp.Item, error) {
	it, err := r.svc.GetItem(ctx, slug)
	if errors.Is(err, catalogapp.ErrNotFound) {
		return cartapp.Item{}, cartapp.ErrNotFound
	}
	if err != nil {
		return cartapp.Item{}, err
	}

	return cartapp.Item{
		ID:    it.ID,
		Slug:  it.Slug,
		Name:  it.Name,
		Price: it.Price,
	}, nil
}
