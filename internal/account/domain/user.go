package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	PasswordHash string
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the contact and shipping data a user edits on the account page
// and confirms at checkout. Email doubles as the login name.
type Profile struct {
	FirstName  string `form:"first_name" validate:"required,max=50"`
	LastName   string `form:"last_name" validate:"required,max=50"`
	Email      string `form:"email" validate:"required,email,max=254"`
	Address    string `form:"address" validate:"required,max=200"`
	City       string `form:"city" validate:"required,max=100"`
	State      string `form:"state" validate:"max=100"`
	PostalCode string `form:"postal_code" validate:"required,max=20"`
	Phone      string `form:"phone" validate:"omitempty,max=30"`
}

// Normalize trims every field and lower-cases the email.
func (p Profile) Normalize() Profile {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = NormalizeEmail(p.Email)
	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	p.State = strings.TrimSpace(p.State)
	p.PostalCode = strings.TrimSpace(p.PostalCode)
	p.Phone = strings.TrimSpace(p.Phone)
	return p
}

func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Passwords are capped at 72 bytes, not characters: bcrypt refuses longer
// input.
type RegisterRequest struct {
	Email           string `form:"email" validate:"required,email,max=254"`
	FirstName       string `form:"first_name" validate:"required,max=50"`
	LastName        string `form:"last_name" validate:"required,max=50"`
	Password        string `form:"password" validate:"required,min=8,maxbytes=72"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

type ChangePasswordRequest struct {
	OldPassword        string `form:"old_password" validate:"required"`
	NewPassword        string `form:"new_password" validate:"required,min=8,maxbytes=72,nefield=OldPassword"`
	NewPasswordConfirm string `form:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}
