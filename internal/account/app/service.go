package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dwikikusuma/storefront/internal/account/domain"
	"github.com/dwikikusuma/storefront/pkg/validation"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	MsgEmailTaken  = "A user with that email already exists."
	MsgOldPassword = "Your old password was entered incorrectly. Please enter it again."
)

type Service struct {
	repo     UserRepo
	hashCost int
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func NewService(repo UserRepo, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := validation.Validate(req); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.New(),
		PasswordHash: string(hash),
		Profile: domain.Profile{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		}.Normalize(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, user)
}

// Login reports ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req domain.ChangePasswordRequest) error {
	if err := validation.Validate(req); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return validation.Field("old_password", MsgOldPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, profile domain.Profile) (domain.User, error) {
	profile = profile.Normalize()
	if err := validation.Validate(profile); err != nil {
		return domain.User{}, err
	}
	return s.repo.UpdateProfile(ctx, userID, profile)
}

func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	if userID == uuid.Nil {
		return domain.User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, userID)
}
