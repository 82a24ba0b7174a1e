package adapter

import (
	"context"

	"github.com/google/uuid"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, userID uuid.UUID) ([]domain.PreviewLine, error) {
	lines, err := r.svc.ListCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PreviewLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, domain.PreviewLine{
			Name:      l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.Total(),
		})
	}
	return out, nil
}
