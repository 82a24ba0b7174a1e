package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	accountsqlite "github.com/dwikikusuma/storefront/internal/account/infra/sqlite"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	cartsqlite "github.com/dwikikusuma/storefront/internal/cart/infra/sqlite"
	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Confirm(ctx context.Context, userID uuid.UUID, c domain.Confirmation) (domain.Receipt, error) {
	var receipt domain.Receipt

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := accountsqlite.NewUserRepo(tx).UpdateProfile(ctx, userID, c)
		if err != nil {
			return err
		}

		carts := cartsqlite.NewCartRepo(tx)
		lines, err := carts.ListLines(ctx, userID)
		if err != nil {
			return err
		}
		n, err := carts.DeleteAll(ctx, userID)
		if err != nil {
			return err
		}

		receipt = domain.Receipt{
			UserID:       u.ID,
			Email:        u.Profile.Email,
			Subtotal:     cartdomain.Subtotal(lines),
			LinesCleared: n,
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, accountapp.ErrNotFound):
			return domain.Receipt{}, app.ErrNotFound
		case errors.Is(err, accountapp.ErrEmailTaken):
			return domain.Receipt{}, app.ErrEmailTaken
		}
		return domain.Receipt{}, fmt.Errorf("confirm checkout: %w", err)
	}
	return receipt, nil
}
