package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dwikikusuma/storefront/internal/account/app"
	"github.com/dwikikusuma/storefront/internal/account/domain"
	"github.com/dwikikusuma/storefront/pkg/sqlite"
)

type UserRecord struct {
	ID           uuid.UUID `gorm:"type:text;primaryKey"`
	Email        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	FirstName    string    `gorm:"not null;default:''"`
	LastName     string    `gorm:"not null;default:''"`
	Address      string    `gorm:"not null;default:''"`
	City         string    `gorm:"not null;default:''"`
	State        string    `gorm:"not null;default:''"`
	PostalCode   string    `gorm:"not null;default:''"`
	Phone        string    `gorm:"not null;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (UserRecord) TableName() string { return "users" }

func Migrate(db *gorm.DB) error {
	return sqlite.Migrate(db, &UserRecord{})
}

type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo accepts the root handle or one scoped to a transaction.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	rec := toRecord(u)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if sqlite.IsUniqueViolation(err) {
			return domain.User{}, app.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return toDomain(rec), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.db.WithContext(ctx).Model(&UserRecord{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	})
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, p domain.Profile) (domain.User, error) {
	// A map so that blank optional fields are written too; struct updates
	// skip zero values.
	res := r.db.WithContext(ctx).Model(&UserRecord{}).Where("id = ?", id).Updates(map[string]any{
		"first_name":  p.FirstName,
		"last_name":   p.LastName,
		"email":       p.Email,
		"address":     p.Address,
		"city":        p.City,
		"state":       p.State,
		"postal_code": p.PostalCode,
		"phone":       p.Phone,
		"updated_at":  time.Now().UTC(),
	})
	if res.Error != nil {
		if sqlite.IsUniqueViolation(res.Error) {
			return domain.User{}, app.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.User{}, app.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) first(ctx context.Context, cond string, arg any) (domain.User, error) {
	var rec UserRecord
	err := r.db.WithContext(ctx).Where(cond, arg).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return toDomain(rec), nil
}

func toRecord(u domain.User) UserRecord {
	p := u.Profile
	return UserRecord{
		ID:           u.ID,
		Email:        p.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		PostalCode:   p.PostalCode,
		Phone:        p.Phone,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toDomain(rec UserRecord) domain.User {
	return domain.User{
		ID:           rec.ID,
		PasswordHash: rec.PasswordHash,
		Profile: domain.Profile{
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
			Email:      rec.Email,
			Address:    rec.Address,
			City:       rec.City,
			State:      rec.State,
			PostalCode: rec.PostalCode,
			Phone:      rec.Phone,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
