package app

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/pkg/validation"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
)

type Service struct {
	store   Store
	cart    CartReader
	profile ProfileReader
}

func NewService(store Store, cart CartReader, profile ProfileReader) *Service {
	return &Service{
		store:   store,
		cart:    cart,
		profile: profile,
	}
}

// Preview loads the cart and the profile used to prefill the form.
func (s *Service) Preview(ctx context.Context, userID uuid.UUID) (domain.Preview, error) {
	if userID == uuid.Nil {
		return domain.Preview{}, ErrUnauthenticated
	}

	var (
		lines   []domain.PreviewLine
		profile domain.Confirmation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lines, err = s.cart.GetCart(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = s.profile.GetProfile(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Preview{}, err
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
	}

	return domain.Preview{
		Confirmation: profile,
		Lines:        lines,
		Subtotal:     subtotal.Round(2),
	}, nil
}

// Checkout validates the confirmation and then writes it onto the profile
// and clears the cart atomically. An empty cart is not an error.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, c domain.Confirmation) (domain.Receipt, error) {
	if userID == uuid.Nil {
		return domain.Receipt{}, ErrUnauthenticated
	}

	c = c.Normalize()
	if err := validation.Validate(c); err != nil {
		return domain.Receipt{}, err
	}

	return s.store.Confirm(ctx, userID, c)
}
