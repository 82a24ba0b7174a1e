package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/postgres"
)

const itemColumns = `id, slug, name, description, image, price, stock, created_at`

type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO items (slug, name, description, image, price, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns,
		item.Slug, item.Name, item.Description, item.Image, item.Price, item.Stock,
	)

	created, err := scanItem(row)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return domain.Item{}, app.ErrDuplicateSlug
		}
		return domain.Item{}, fmt.Errorf("insert item: %w", err)
	}
	return created, nil
}

func (r *ItemRepo) GetBySlug(ctx context.Context, slug string) (domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE slug = $1`, slug)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item %q: %w", slug, err)
	}
	return item, nil
}

func (r *ItemRepo) List(ctx context.Context) ([]domain.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, name`)
}

func (r *ItemRepo) SearchByName(ctx context.Context, query string) ([]domain.Item, error) {
	// strpos keeps LIKE metacharacters in the query literal.
	return r.query(ctx, `SELECT `+itemColumns+` FROM items WHERE strpos(name, $1) > 0 ORDER BY name`, query)
}

func (r *ItemRepo) query(ctx context.Context, q string, args ...any) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (domain.Item, error) {
	var it domain.Item
	err := s.Scan(&it.ID, &it.Slug, &it.Name, &it.Description, &it.Image, &it.Price, &it.Stock, &it.CreatedAt)
	return it, err
}
