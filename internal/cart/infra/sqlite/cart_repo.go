package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/sqlite"
)

// CartLineRecord is the cart_lines table; the composite unique index is what
// rejects a second line for the same (user, item).
type CartLineRecord struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	UserID    uuid.UUID `gorm:"type:text;not null;uniqueIndex:idx_cart_user_item;index"`
	ItemID    uuid.UUID `gorm:"type:text;not null;uniqueIndex:idx_cart_user_item"`
	Quantity  int       `gorm:"not null;check:quantity >= 1"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CartLineRecord) TableName() string { return "cart_lines" }

func Migrate(db *gorm.DB) error {
	return sqlite.Migrate(db, &CartLineRecord{})
}

type CartRepo struct {
	db *gorm.DB
}

// NewCartRepo accepts the root handle or a transaction handle.
func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Insert(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	rec := CartLineRecord{
		ID:        line.ID,
		UserID:    line.UserID,
		ItemID:    line.ItemID,
		Quantity:  line.Quantity,
		CreatedAt: line.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if sqlite.IsUniqueViolation(err) {
			return domain.CartLine{}, app.ErrDuplicateEntry
		}
		return domain.CartLine{}, fmt.Errorf("insert cart line: %w", err)
	}
	return line, nil
}

type lineRow struct {
	Slug      string
	Name      string
	Image     string
	Price     decimal.Decimal
	Quantity  int
	CreatedAt time.Time
}

func (r *CartRepo) ListLines(ctx context.Context, userID uuid.UUID) ([]domain.Line, error) {
	var rows []lineRow
	err := r.db.WithContext(ctx).
		Table("cart_lines AS cl").
		Select("i.slug AS slug, i.name AS name, i.image AS image, i.price AS price, cl.quantity AS quantity, cl.created_at AS created_at").
		Joins("JOIN items AS i ON i.id = cl.item_id").
		Where("cl.user_id = ?", userID).
		Order("cl.created_at").Order("i.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}

	out := make([]domain.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Line{
			ItemSlug:  row.Slug,
			ItemName:  row.Name,
			ItemImage: row.Image,
			UnitPrice: row.Price,
			Quantity:  row.Quantity,
			AddedAt:   row.CreatedAt,
		})
	}
	return out, nil
}

func (r *CartRepo) DeleteByItemSlug(ctx context.Context, userID uuid.UUID, slug string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found []struct {
			ID   uuid.UUID
			Name string
		}
		err := tx.Table("cart_lines AS cl").
			Select("cl.id AS id, i.name AS name").
			Joins("JOIN items AS i ON i.id = cl.item_id").
			Where("cl.user_id = ? AND i.slug = ?", userID, slug).
			Limit(1).
			Scan(&found).Error
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return app.ErrNotFound
		}

		if err := tx.Where("id = ?", found[0].ID).Delete(&CartLineRecord{}).Error; err != nil {
			return err
		}
		name = found[0].Name
		return nil
	})
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("delete cart line: %w", err)
	}
	return name, nil
}

// DeleteAll removes every line of the user and reports how many went.
func (r *CartRepo) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&CartLineRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("clear cart: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}
