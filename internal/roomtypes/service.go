package roomtypes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
	"github.com/wanderstay/wanderstay-backend/pkg/slug"
)

type locationDirectory interface {
	FindBySlug(ctx context.Context, slug string) (*models.Location, error)
}

// Service exposes room type directory operations.
type Service interface {
	Create(ctx context.Context, locationSlug string, input CreateRoomTypeInput) (*RoomTypeDTO, error)
	GetBySlug(ctx context.Context, roomTypeSlug string) (*RoomTypeDTO, error)
	ListByLocation(ctx context.Context, locationSlug string, params pagination.Params) ([]RoomTypeDTO, int64, error)
	Update(ctx context.Context, roomTypeSlug string, input UpdateRoomTypeInput) (*RoomTypeDTO, error)
	SoftDelete(ctx context.Context, roomTypeSlug string) error
}

// CreateRoomTypeInput captures creation-time room type data.
type CreateRoomTypeInput struct {
	Name           string
	Description    *string
	BasePrice      decimal.Decimal
	TotalInventory int
	MaxOccupancy   int
	DefaultMinStay int
	MaxAdvanceDays int
}

// UpdateRoomTypeInput captures the mutable room type fields. TotalInventory
// changes only affect inventory rows materialized afterwards.
type UpdateRoomTypeInput struct {
	Name           *string
	Description    *string
	BasePrice      *decimal.Decimal
	TotalInventory *int
	MaxOccupancy   *int
	DefaultMinStay *int
	MaxAdvanceDays *int
	IsActive       *bool
}

type service struct {
	repo      *Repository
	locations locationDirectory
}

// NewService wires a room type service with its dependencies.
func NewService(repo *Repository, locations locationDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("room type repository required")
	}
	if locations == nil {
		return nil, fmt.Errorf("location directory required")
	}
	return &service{repo: repo, locations: locations}, nil
}

func (s *service) Create(ctx context.Context, locationSlug string, input CreateRoomTypeInput) (*RoomTypeDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room type name is required")
	}
	if input.TotalInventory < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total inventory cannot be negative")
	}
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}

	location, err := s.locations.FindBySlug(ctx, locationSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}

	roomTypeSlug, err := slug.GenerateUnique(name, func(candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate room type slug")
	}

	roomType := &models.RoomType{
		LocationID:     location.ID,
		HotelID:        location.HotelID,
		Name:           name,
		Slug:           roomTypeSlug,
		Description:    input.Description,
		BasePrice:      input.BasePrice,
		TotalInventory: input.TotalInventory,
		MaxOccupancy:   defaultIfZero(input.MaxOccupancy, 1),
		DefaultMinStay: defaultIfZero(input.DefaultMinStay, 1),
		MaxAdvanceDays: defaultIfZero(input.MaxAdvanceDays, 365),
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, roomType); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create room type")
	}
	return FromModel(roomType), nil
}

func (s *service) GetBySlug(ctx context.Context, roomTypeSlug string) (*RoomTypeDTO, error) {
	roomType, err := s.loadBySlug(ctx, roomTypeSlug)
	if err != nil {
		return nil, err
	}
	return FromModel(roomType), nil
}

func (s *service) ListByLocation(ctx context.Context, locationSlug string, params pagination.Params) ([]RoomTypeDTO, int64, error) {
	location, err := s.locations.FindBySlug(ctx, locationSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}

	roomTypes, total, err := s.repo.ListByLocation(ctx, location.ID, params)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list room types")
	}
	return FromModels(roomTypes), total, nil
}

func (s *service) Update(ctx context.Context, roomTypeSlug string, input UpdateRoomTypeInput) (*RoomTypeDTO, error) {
	roomType, err := s.loadBySlug(ctx, roomTypeSlug)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "room type name cannot be empty")
		}
		roomType.Name = name
	}
	if input.Description != nil {
		roomType.Description = input.Description
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
		}
		roomType.BasePrice = *input.BasePrice
	}
	if input.TotalInventory != nil {
		if *input.TotalInventory < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total inventory cannot be negative")
		}
		roomType.TotalInventory = *input.TotalInventory
	}
	if input.MaxOccupancy != nil {
		roomType.MaxOccupancy = *input.MaxOccupancy
	}
	if input.DefaultMinStay != nil {
		roomType.DefaultMinStay = *input.DefaultMinStay
	}
	if input.MaxAdvanceDays != nil {
		roomType.MaxAdvanceDays = *input.MaxAdvanceDays
	}
	if input.IsActive != nil {
		roomType.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, roomType); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room type")
	}
	return FromModel(roomType), nil
}

func (s *service) SoftDelete(ctx context.Context, roomTypeSlug string) error {
	roomType, err := s.loadBySlug(ctx, roomTypeSlug)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, roomType.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete room type")
	}
	return nil
}

func (s *service) loadBySlug(ctx context.Context, roomTypeSlug string) (*models.RoomType, error) {
	if roomTypeSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room type slug is required")
	}
	roomType, err := s.repo.FindBySlug(ctx, roomTypeSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room type")
	}
	return roomType, nil
}

func defaultIfZero(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
