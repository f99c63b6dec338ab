package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
	"github.com/wanderstay/wanderstay-backend/pkg/slug"
)

type hotelDirectory interface {
	FindBySlug(ctx context.Context, slug string) (*models.Hotel, error)
	IncrementLocationCount(ctx context.Context, hotelID uuid.UUID, delta int) error
}

// Service exposes location directory operations.
type Service interface {
	Create(ctx context.Context, hotelSlug string, input CreateLocationInput) (*LocationDTO, error)
	GetBySlug(ctx context.Context, locationSlug string) (*LocationDTO, error)
	ListByHotel(ctx context.Context, hotelSlug string, params pagination.Params) ([]LocationDTO, int64, error)
	Update(ctx context.Context, locationSlug string, input UpdateLocationInput) (*LocationDTO, error)
	SoftDelete(ctx context.Context, locationSlug string) error
}

// CreateLocationInput captures creation-time location data.
type CreateLocationInput struct {
	Name         string
	Description  *string
	Address      string
	City         string
	State        string
	Country      string
	Latitude     *float64
	Longitude    *float64
	ContactPhone string
	ContactEmail *string
}

// UpdateLocationInput captures the mutable location fields.
type UpdateLocationInput struct {
	Name         *string
	Description  *string
	Address      *string
	City         *string
	State        *string
	Country      *string
	Latitude     *float64
	Longitude    *float64
	ContactPhone *string
	ContactEmail *string
	IsActive     *bool
}

type service struct {
	repo   *Repository
	hotels hotelDirectory
}

// NewService wires a location service with its dependencies.
func NewService(repo *Repository, hotels hotelDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("location repository required")
	}
	if hotels == nil {
		return nil, fmt.Errorf("hotel directory required")
	}
	return &service{repo: repo, hotels: hotels}, nil
}

func (s *service) Create(ctx context.Context, hotelSlug string, input CreateLocationInput) (*LocationDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location name is required")
	}
	if strings.TrimSpace(input.City) == "" || strings.TrimSpace(input.Country) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city and country are required")
	}

	hotel, err := s.hotels.FindBySlug(ctx, hotelSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load hotel")
	}

	locationSlug, err := slug.GenerateUnique(name, func(candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate location slug")
	}

	location := &models.Location{
		HotelID:      hotel.ID,
		Name:         name,
		Slug:         locationSlug,
		Description:  input.Description,
		Address:      strings.TrimSpace(input.Address),
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		Country:      strings.TrimSpace(input.Country),
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		ContactEmail: input.ContactEmail,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location")
	}
	if err := s.hotels.IncrementLocationCount(ctx, hotel.ID, 1); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update hotel location count")
	}
	return FromModel(location), nil
}

func (s *service) GetBySlug(ctx context.Context, locationSlug string) (*LocationDTO, error) {
	location, err := s.loadBySlug(ctx, locationSlug)
	if err != nil {
		return nil, err
	}
	return FromModel(location), nil
}

func (s *service) ListByHotel(ctx context.Context, hotelSlug string, params pagination.Params) ([]LocationDTO, int64, error) {
	hotel, err := s.hotels.FindBySlug(ctx, hotelSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
		}
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load hotel")
	}

	locations, total, err := s.repo.ListByHotel(ctx, hotel.ID, params)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
	}
	return FromModels(locations), total, nil
}

func (s *service) Update(ctx context.Context, locationSlug string, input UpdateLocationInput) (*LocationDTO, error) {
	location, err := s.loadBySlug(ctx, locationSlug)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "location name cannot be empty")
		}
		location.Name = name
	}
	if input.Description != nil {
		location.Description = input.Description
	}
	if input.Address != nil {
		location.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		location.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		location.State = strings.TrimSpace(*input.State)
	}
	if input.Country != nil {
		location.Country = strings.TrimSpace(*input.Country)
	}
	if input.Latitude != nil {
		location.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		location.Longitude = input.Longitude
	}
	if input.ContactPhone != nil {
		location.ContactPhone = strings.TrimSpace(*input.ContactPhone)
	}
	if input.ContactEmail != nil {
		location.ContactEmail = input.ContactEmail
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update location")
	}
	return FromModel(location), nil
}

func (s *service) SoftDelete(ctx context.Context, locationSlug string) error {
	location, err := s.loadBySlug(ctx, locationSlug)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, location.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location")
	}
	if err := s.hotels.IncrementLocationCount(ctx, location.HotelID, -1); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update hotel location count")
	}
	return nil
}

func (s *service) loadBySlug(ctx context.Context, locationSlug string) (*models.Location, error) {
	if locationSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location slug is required")
	}
	location, err := s.repo.FindBySlug(ctx, locationSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}
	return location, nil
}
