package hotels

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
	"github.com/wanderstay/wanderstay-backend/pkg/slug"
)

// Service exposes hotel directory operations.
type Service interface {
	Create(ctx context.Context, input CreateHotelInput) (*HotelDTO, error)
	GetBySlug(ctx context.Context, hotelSlug string) (*HotelDTO, error)
	List(ctx context.Context, params pagination.Params) ([]HotelDTO, int64, error)
	Update(ctx context.Context, hotelSlug string, input UpdateHotelInput) (*HotelDTO, error)
	SoftDelete(ctx context.Context, hotelSlug string) error
}

// CreateHotelInput captures creation-time hotel data.
type CreateHotelInput struct {
	Name         string
	Description  *string
	ContactPhone string
	ContactEmail *string
}

// UpdateHotelInput captures the mutable hotel fields.
type UpdateHotelInput struct {
	Name         *string
	Description  *string
	ContactPhone *string
	ContactEmail *string
	IsActive     *bool
}

type service struct {
	repo *Repository
}

// NewService wires a hotel service with the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("hotel repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateHotelInput) (*HotelDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hotel name is required")
	}
	if strings.TrimSpace(input.ContactPhone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact phone is required")
	}

	hotelSlug, err := slug.GenerateUnique(name, func(candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate hotel slug")
	}

	hotel := &models.Hotel{
		Name:         name,
		Slug:         hotelSlug,
		Description:  input.Description,
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		ContactEmail: input.ContactEmail,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, hotel); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create hotel")
	}
	return FromModel(hotel), nil
}

func (s *service) GetBySlug(ctx context.Context, hotelSlug string) (*HotelDTO, error) {
	hotel, err := s.loadBySlug(ctx, hotelSlug)
	if err != nil {
		return nil, err
	}
	return FromModel(hotel), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]HotelDTO, int64, error) {
	hotels, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list hotels")
	}
	return FromModels(hotels), total, nil
}

func (s *service) Update(ctx context.Context, hotelSlug string, input UpdateHotelInput) (*HotelDTO, error) {
	hotel, err := s.loadBySlug(ctx, hotelSlug)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "hotel name cannot be empty")
		}
		hotel.Name = name
	}
	if input.Description != nil {
		hotel.Description = input.Description
	}
	if input.ContactPhone != nil {
		hotel.ContactPhone = strings.TrimSpace(*input.ContactPhone)
	}
	if input.ContactEmail != nil {
		hotel.ContactEmail = input.ContactEmail
	}
	if input.IsActive != nil {
		hotel.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, hotel); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update hotel")
	}
	return FromModel(hotel), nil
}

func (s *service) SoftDelete(ctx context.Context, hotelSlug string) error {
	hotel, err := s.loadBySlug(ctx, hotelSlug)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, hotel.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete hotel")
	}
	return nil
}

func (s *service) loadBySlug(ctx context.Context, hotelSlug string) (*models.Hotel, error) {
	if hotelSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hotel slug is required")
	}
	hotel, err := s.repo.FindBySlug(ctx, hotelSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load hotel")
	}
	return hotel, nil
}
