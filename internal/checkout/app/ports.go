package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

// Store applies a confirmed checkout. The profile write and the cart clear
// happen in one transaction: either both land or neither does.
type Store interface {
	Confirm(ctx context.Context, userID uuid.UUID, c domain.Confirmation) (domain.Receipt, error)
}

type CartReader interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]domain.PreviewLine, error)
}

type ProfileReader interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (domain.Confirmation, error)
}
