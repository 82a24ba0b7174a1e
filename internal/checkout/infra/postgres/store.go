package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	accountpg "github.com/dwikikusuma/storefront/internal/account/infra/postgres"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/pkg/postgres"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Confirm(ctx context.Context, userID uuid.UUID, c domain.Confirmation) (domain.Receipt, error) {
	var receipt domain.Receipt

	err := postgres.ExecTx(ctx, s.db, func(tx *sql.Tx) error {
		u, err := accountpg.NewUserRepo(tx).UpdateProfile(ctx, userID, c)
		if err != nil {
			return err
		}

		carts := cartpg.NewCartRepo(tx)
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
		return domain.Receipt{}, mapError(err)
	}
	return receipt, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, accountapp.ErrNotFound):
		return app.ErrNotFound
	case errors.Is(err, accountapp.ErrEmailTaken):
		return app.ErrEmailTaken
	default:
		return fmt.Errorf("confirm checkout: %w", err)
	}
}
