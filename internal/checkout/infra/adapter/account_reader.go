package adapter

import (
	"context"
	"errors"

	"github.com/google/uuid"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

type AccountServiceReader struct {
	svc *accountapp.Service
}

func NewAccountServiceReader(svc *accountapp.Service) *AccountServiceReader {
	return &AccountServiceReader{svc: svc}
}

func (r *AccountServiceReader) GetProfile(ctx context.Context, userID uuid.UUID) (domain.Confirmation, error) {
	u, err := r.svc.GetUser(ctx, userID)
	if errors.Is(err, accountapp.ErrNotFound) {
		return domain.Confirmation{}, checkoutapp.ErrNotFound
	}
	if err != nil {
		return domain.Confirmation{}, err
	}
	return u.Profile, nil
}
