package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	"github.com/wanderstay/wanderstay-backend/pkg/errors"
)

// RoomTypeDirectory is the lookup surface the availability service needs from
// the room type store.
type RoomTypeDirectory interface {
	GetBySlug(ctx context.Context, slug string) (*models.RoomType, error)
}

// Service answers availability questions for the public API. It is read-only;
// all ledger mutations go through the booking workflow.
type Service interface {
	CheckAvailability(ctx context.Context, input CheckAvailabilityInput) (*Availability, error)
}

// CheckAvailabilityInput identifies the room type and half-open night range
// to check.
type CheckAvailabilityInput struct {
	RoomTypeSlug string
	CheckIn      time.Time
	CheckOut     time.Time
	NumRooms     int
}

// Availability is the outcome of an availability check.
type Availability struct {
	RoomTypeID   uuid.UUID `json:"room_type_id"`
	RoomTypeSlug string    `json:"room_type_slug"`
	Available    bool      `json:"available"`
	MinAvailable int       `json:"min_available"`
	NightCount   int       `json:"night_count"`
}

type service struct {
	repo      Repository
	roomTypes RoomTypeDirectory
}

// NewService wires an availability service with its dependencies.
func NewService(repo Repository, roomTypes RoomTypeDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if roomTypes == nil {
		return nil, fmt.Errorf("room type directory required")
	}
	return &service{repo: repo, roomTypes: roomTypes}, nil
}

func (s *service) CheckAvailability(ctx context.Context, input CheckAvailabilityInput) (*Availability, error) {
	if input.RoomTypeSlug == "" {
		return nil, errors.New(errors.CodeValidation, "room type slug is required")
	}
	if input.NumRooms < 1 {
		return nil, errors.New(errors.CodeValidation, "num_rooms must be at least 1")
	}

	roomType, err := s.roomTypes.GetBySlug(ctx, input.RoomTypeSlug)
	if err != nil {
		return nil, err
	}

	available, minAvailable, err := s.repo.CheckAvailability(ctx, roomType.ID, input.CheckIn, input.CheckOut, input.NumRooms)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "checking availability")
	}

	return &Availability{
		RoomTypeID:   roomType.ID,
		RoomTypeSlug: roomType.Slug,
		Available:    available,
		MinAvailable: minAvailable,
		NightCount:   NightCount(input.CheckIn, input.CheckOut),
	}, nil
}
