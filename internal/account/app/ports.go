package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/account/domain"
)

type UserRepo interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, profile domain.Profile) (domain.User, error)
}
