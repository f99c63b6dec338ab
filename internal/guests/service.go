package guests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/auth"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
	"github.com/wanderstay/wanderstay-backend/pkg/db"
	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/security"
)

// Service handles guest registration, login and profile access.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	GetProfile(ctx context.Context, guestID uuid.UUID) (*GuestDTO, error)
	UpdateProfile(ctx context.Context, guestID uuid.UUID, input UpdateProfileInput) (*GuestDTO, error)
	Deactivate(ctx context.Context, guestID uuid.UUID) error
}

// RegisterInput captures new guest signup data.
type RegisterInput struct {
	Name        string
	Email       *string
	PhoneNumber string
	Password    string
}

// UpdateProfileInput captures the mutable guest profile fields. Phone numbers
// are login identity and cannot change here.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// LoginInput captures guest credentials.
type LoginInput struct {
	PhoneNumber string
	Password    string
}

// AuthResult bundles the guest profile with a freshly minted access token.
type AuthResult struct {
	Guest       *GuestDTO `json:"guest"`
	AccessToken string    `json:"access_token"`
}

type service struct {
	repo        *Repository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService wires a guest service with its dependencies.
func NewService(repo *Repository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("guest repository required")
	}
	return &service{
		repo:        repo,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.PhoneNumber)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number is required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if input.Email != nil && !strings.Contains(*input.Email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	if _, err := s.repo.FindByPhoneNumber(ctx, phone); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone number already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup guest")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	guest := &models.Guest{
		Name:        name,
		Email:       input.Email,
		PhoneNumber: phone,
		Password:    &hash,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, guest); err != nil {
		// The pre-check above races with concurrent registrations; the unique
		// index on phone_number is the real guard.
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone number already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create guest")
	}

	return s.issueToken(guest)
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	phone := strings.TrimSpace(input.PhoneNumber)
	if phone == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number and password are required")
	}

	guest, err := s.repo.FindByPhoneNumber(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup guest")
	}
	if !guest.IsActive || guest.Password == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(input.Password, *guest.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.issueToken(guest)
}

func (s *service) GetProfile(ctx context.Context, guestID uuid.UUID) (*GuestDTO, error) {
	if guestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest id is required")
	}
	guest, err := s.repo.FindByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guest")
	}
	return FromModel(guest), nil
}

func (s *service) UpdateProfile(ctx context.Context, guestID uuid.UUID, input UpdateProfileInput) (*GuestDTO, error) {
	guest, err := s.loadActive(ctx, guestID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		guest.Name = name
	}
	if input.Email != nil {
		if !strings.Contains(*input.Email, "@") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
		}
		guest.Email = input.Email
	}

	if err := s.repo.Update(ctx, guest); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update guest")
	}
	return FromModel(guest), nil
}

// Deactivate disables login and hides the account. Bookings keep their
// guest_id so history stays intact.
func (s *service) Deactivate(ctx context.Context, guestID uuid.UUID) error {
	guest, err := s.loadActive(ctx, guestID)
	if err != nil {
		return err
	}
	guest.IsActive = false
	if err := s.repo.Update(ctx, guest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate guest")
	}
	if err := s.repo.SoftDelete(ctx, guest.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete guest")
	}
	return nil
}

func (s *service) loadActive(ctx context.Context, guestID uuid.UUID) (*models.Guest, error) {
	if guestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest id is required")
	}
	guest, err := s.repo.FindByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guest")
	}
	return guest, nil
}

func (s *service) issueToken(guest *models.Guest) (*AuthResult, error) {
	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		GuestID:     guest.ID,
		PhoneNumber: guest.PhoneNumber,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &AuthResult{Guest: FromModel(guest), AccessToken: token}, nil
}
