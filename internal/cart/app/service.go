package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEntry  = errors.New("item already in cart")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnauthenticated = errors.New("unauthenticated")
)

type Service struct {
	repo    CartRepo
	catalog CatalogReader
	now     func() time.Time
}

func NewService(repo CartRepo, catalog CatalogReader) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

// AddToCart creates the user's line for the item. A second add of the same
// item is rejected with ErrDuplicateEntry, never merged.
func (s *Service) AddToCart(ctx context.Context, userID uuid.UUID, itemSlug string, quantity int) (domain.CartLine, error) {
	if userID == uuid.Nil {
		return domain.CartLine{}, ErrUnauthenticated
	}
	if quantity < 1 {
		return domain.CartLine{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidRequest, quantity)
	}

	item, err := s.catalog.GetItem(ctx, strings.TrimSpace(itemSlug))
	if err != nil {
		return domain.CartLine{}, err
	}

	return s.repo.Insert(ctx, domain.CartLine{
		ID:        uuid.New(),
		UserID:    userID,
		ItemID:    item.ID,
		Quantity:  quantity,
		CreatedAt: s.now().UTC(),
	})
}

func (s *Service) ListCart(ctx context.Context, userID uuid.UUID) ([]domain.Line, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListLines(ctx, userID)
}

// RemoveFromCart deletes the user's line for itemKey (an item slug) and
// returns the removed item's name.
func (s *Service) RemoveFromCart(ctx context.Context, userID uuid.UUID, itemKey string) (string, error) {
	itemKey = strings.TrimSpace(itemKey)
	if userID == uuid.Nil || itemKey == "" {
		return "", ErrInvalidRequest
	}
	return s.repo.DeleteByItemSlug(ctx, userID, itemKey)
}

func (s *Service) ComputeSubtotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	lines, err := s.ListCart(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.Subtotal(lines), nil
}

func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (domain.Summary, error) {
	lines, err := s.ListCart(ctx, userID)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{Lines: lines, Subtotal: domain.Subtotal(lines)}, nil
}
