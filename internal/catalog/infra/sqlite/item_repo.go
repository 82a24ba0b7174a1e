package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/sqlite"
)

// ItemRecord is the items table. Price is stored as text so sqlite keeps
// the exact decimal instead of coercing it to REAL.
type ItemRecord struct {
	ID          uuid.UUID       `gorm:"type:text;primaryKey"`
	Slug        string          `gorm:"not null;uniqueIndex"`
	Name        string          `gorm:"not null;index"`
	Description string          `gorm:"not null;default:''"`
	Image       string          `gorm:"not null;default:''"`
	Price       decimal.Decimal `gorm:"type:varchar(32);not null"`
	Stock       int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (ItemRecord) TableName() string { return "items" }

func Migrate(db *gorm.DB) error {
	return sqlite.Migrate(db, &ItemRecord{})
}

type ItemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	rec := ItemRecord{
		ID:          uuid.New(),
		Slug:        item.Slug,
		Name:        item.Name,
		Description: item.Description,
		Image:       item.Image,
		Price:       item.Price,
		Stock:       item.Stock,
		CreatedAt:   time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if sqlite.IsUniqueViolation(err) {
			return domain.Item{}, app.ErrDuplicateSlug
		}
		return domain.Item{}, fmt.Errorf("insert item: %w", err)
	}
	return toDomain(rec), nil
}

func (r *ItemRepo) GetBySlug(ctx context.Context, slug string) (domain.Item, error) {
	var rec ItemRecord
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Item{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item %q: %w", slug, err)
	}
	return toDomain(rec), nil
}

func (r *ItemRepo) List(ctx context.Context) ([]domain.Item, error) {
	var recs []ItemRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("name").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return toDomainList(recs), nil
}

// SearchByName uses instr, which is case-sensitive, unlike sqlite's LIKE.
func (r *ItemRepo) SearchByName(ctx context.Context, query string) ([]domain.Item, error) {
	var recs []ItemRecord
	err := r.db.WithContext(ctx).Where("instr(name, ?) > 0", query).Order("name").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return toDomainList(recs), nil
}

func toDomain(rec ItemRecord) domain.Item {
	return domain.Item{
		ID:          rec.ID,
		Slug:        rec.Slug,
		Name:        rec.Name,
		Description: rec.Description,
		Image:       rec.Image,
		Price:       rec.Price,
		Stock:       rec.Stock,
		CreatedAt:   rec.CreatedAt,
	}
}

func toDomainList(recs []ItemRecord) []domain.Item {
	out := make([]domain.Item, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomain(rec))
	}
	return out
}
