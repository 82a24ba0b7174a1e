package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/postgres"
)

type CartRepo struct {
	db postgres.DBTX
}

// NewCartRepo accepts a *sql.DB or a *sql.Tx.
func NewCartRepo(db postgres.DBTX) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Insert(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	// The unique (user_id, item_id) constraint decides duplicates; there is
	// no pre-check, so two racing inserts cannot both succeed.
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_lines (id, user_id, item_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		line.ID, line.UserID, line.ItemID, line.Quantity, line.CreatedAt,
	).Scan(&line.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return domain.CartLine{}, app.ErrDuplicateEntry
		}
		// The user or the item was deleted between lookup and insert.
		if postgres.IsForeignKeyViolation(err) {
			return domain.CartLine{}, app.ErrNotFound
		}
		return domain.CartLine{}, fmt.Errorf("insert cart line: %w", err)
	}
	return line, nil
}

func (r *CartRepo) ListLines(ctx context.Context, userID uuid.UUID) ([]domain.Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.slug, i.name, i.image, i.price, cl.quantity, cl.created_at
		FROM cart_lines cl
		JOIN items i ON i.id = cl.item_id
		WHERE cl.user_id = $1
		ORDER BY cl.created_at, i.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()

	var out []domain.Line
	for rows.Next() {
		var l domain.Line
		if err := rows.Scan(&l.ItemSlug, &l.ItemName, &l.ItemImage, &l.UnitPrice, &l.Quantity, &l.AddedAt); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *CartRepo) DeleteByItemSlug(ctx context.Context, userID uuid.UUID, slug string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM cart_lines cl
		USING items i
		WHERE cl.item_id = i.id AND cl.user_id = $1 AND i.slug = $2
		RETURNING i.name`, userID, slug,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", app.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete cart line: %w", err)
	}
	return name, nil
}

// DeleteAll removes every line of the user and reports how many went.
func (r *CartRepo) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return int(n), nil
}
