package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("item not found")
	ErrDuplicateSlug = errors.New("item slug already exists")
	ErrEmptySearch   = errors.New("empty search")
)

type Service struct {
	repo ItemRepo
}

func NewService(repo ItemRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	item.Slug = strings.TrimSpace(item.Slug)
	item.Name = strings.TrimSpace(item.Name)

	if item.Name == "" || !domain.ValidSlug(item.Slug) || item.Price.IsNegative() || item.Stock < 0 {
		return domain.Item{}, ErrInvalidInput
	}
	item.Price = item.Price.Round(2)

	return s.repo.Create(ctx, item)
}

func (s *Service) GetItem(ctx context.Context, slug string) (domain.Item, error) {
	if !domain.ValidSlug(slug) {
		return domain.Item{}, ErrNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}

// SearchItems rejects a blank query instead of treating it as a wildcard.
func (s *Service) SearchItems(ctx context.Context, query string) ([]domain.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptySearch
	}
	return s.repo.SearchByName(ctx, query)
}
