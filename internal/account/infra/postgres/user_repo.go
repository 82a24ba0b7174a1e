package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/account/app"
	"github.com/dwikikusuma/storefront/internal/account/domain"
	"github.com/dwikikusuma/storefront/pkg/postgres"
)

const userColumns = `id, password_hash, first_name, last_name, email, address, city, state, postal_code, phone, created_at, updated_at`

type UserRepo struct {
	db postgres.DBTX
}

// NewUserRepo accepts a *sql.DB or a *sql.Tx.
func NewUserRepo(db postgres.DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	p := u.Profile
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, password_hash, first_name, last_name, email, address, city, state, postal_code, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+userColumns,
		u.ID, u.PasswordHash, p.FirstName, p.LastName, p.Email, p.Address, p.City, p.State, p.PostalCode, p.Phone, u.CreatedAt, u.UpdatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return domain.User{}, app.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, p domain.Profile) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, address = $5, city = $6,
		    state = $7, postal_code = $8, phone = $9, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, p.FirstName, p.LastName, p.Email, p.Address, p.City, p.State, p.PostalCode, p.Phone,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return domain.User{}, app.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func (r *UserRepo) getOne(ctx context.Context, q string, arg any) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	p := &u.Profile
	err := row.Scan(&u.ID, &u.PasswordHash, &p.FirstName, &p.LastName, &p.Email, &p.Address,
		&p.City, &p.State, &p.PostalCode, &p.Phone, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
