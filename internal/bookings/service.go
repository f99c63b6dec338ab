package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/internal/inventory"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	"github.com/wanderstay/wanderstay-backend/pkg/enums"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/metrics"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
	"github.com/wanderstay/wanderstay-backend/pkg/slug"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type roomTypeDirectory interface {
	GetBySlug(ctx context.Context, slug string) (*models.RoomType, error)
}

type guestDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Guest, error)
}

// Service is the reservation workflow. Every ledger mutation happens inside
// one transaction with the booking row it belongs to.
type Service interface {
	Create(ctx context.Context, input CreateBookingInput) (*BookingDTO, error)
	Cancel(ctx context.Context, guestID uuid.UUID, bookingSlug string, reason *string) (*BookingDTO, error)
	UpdateStatus(ctx context.Context, guestID uuid.UUID, bookingSlug string, next enums.BookingStatus) (*BookingDTO, error)
	GetBySlug(ctx context.Context, guestID uuid.UUID, bookingSlug string) (*BookingDTO, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, params pagination.Params) ([]BookingDTO, int64, error)
	SoftDelete(ctx context.Context, guestID uuid.UUID, bookingSlug string) error
}

// CreateBookingInput captures a reservation request.
type CreateBookingInput struct {
	GuestID         uuid.UUID
	RoomTypeSlug    string
	CheckIn         time.Time
	CheckOut        time.Time
	NumRooms        int
	NumGuests       int
	SpecialRequests *string
}

type service struct {
	repo      Repository
	inventory inventory.Repository
	roomTypes roomTypeDirectory
	guests    guestDirectory
	tx        txRunner
	cfg       config.BookingConfig
	metrics   *metrics.BookingMetrics
	now       func() time.Time
}

// NewService wires the booking workflow with its dependencies.
func NewService(
	repo Repository,
	inv inventory.Repository,
	roomTypes roomTypeDirectory,
	guests guestDirectory,
	tx txRunner,
	cfg config.BookingConfig,
	bookingMetrics *metrics.BookingMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if inv == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if roomTypes == nil {
		return nil, fmt.Errorf("room type directory required")
	}
	if guests == nil {
		return nil, fmt.Errorf("guest directory required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      repo,
		inventory: inv,
		roomTypes: roomTypes,
		guests:    guests,
		tx:        tx,
		cfg:       cfg,
		metrics:   bookingMetrics,
		now:       time.Now,
	}, nil
}

// Create runs the reservation protocol: materialize ledger rows, lock the
// night range, re-check availability under the lock, then increment the
// ledger and insert the booking in the same transaction. Either all of it
// commits or none of it does.
func (s *service) Create(ctx context.Context, input CreateBookingInput) (*BookingDTO, error) {
	if input.GuestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest id is required")
	}
	if input.NumRooms < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "num_rooms must be at least 1")
	}
	if input.NumGuests < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "num_guests must be at least 1")
	}

	nightCount := inventory.NightCount(input.CheckIn, input.CheckOut)
	if nightCount == 0 {
		// A zero-night range would vacuously pass the ledger check.
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking must span at least one night")
	}

	roomType, err := s.roomTypes.GetBySlug(ctx, input.RoomTypeSlug)
	if err != nil {
		return nil, err
	}
	if !roomType.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room type not found")
	}
	if roomType.MaxOccupancy > 0 && input.NumGuests > roomType.MaxOccupancy*input.NumRooms {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "num_guests exceeds room capacity")
	}

	if _, err := s.guests.FindByID(ctx, input.GuestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guest")
	}

	bookingSlug, err := slug.GenerateUnique("bk-"+roomType.Slug, func(candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate booking slug")
	}

	pricePerNight := roomType.BasePrice
	totalPrice := pricePerNight.Mul(decimal.NewFromInt(int64(nightCount * input.NumRooms)))

	status := enums.BookingStatusPending
	if s.cfg.AutoConfirm {
		status = enums.BookingStatusConfirmed
	}

	booking := &models.Booking{
		Slug:            bookingSlug,
		GuestID:         input.GuestID,
		RoomTypeID:      roomType.ID,
		LocationID:      roomType.LocationID,
		HotelID:         roomType.HotelID,
		CheckIn:         input.CheckIn,
		CheckOut:        input.CheckOut,
		NumRooms:        input.NumRooms,
		NumGuests:       input.NumGuests,
		NightCount:      nightCount,
		PricePerNight:   pricePerNight,
		TotalPrice:      totalPrice,
		Status:          status,
		SpecialRequests: input.SpecialRequests,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		inv := s.inventory.WithTx(tx)
		repo := s.repo.WithTx(tx)

		if err := inv.EnsureRowsExist(ctx, roomType.ID, input.CheckIn, input.CheckOut, roomType.TotalInventory); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "materialize inventory rows")
		}

		rows, err := inv.GetForDateRangeWithLock(ctx, roomType.ID, input.CheckIn, input.CheckOut)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock inventory rows")
		}

		// Re-check under the lock. An unlocked pre-check cannot prevent two
		// concurrent requests from both observing "available".
		minAvailable := inventory.MinAvailable(rows)
		if len(rows) < nightCount || minAvailable < input.NumRooms {
			return pkgerrors.New(pkgerrors.CodeConflict, "not enough rooms for the requested dates").
				WithDetails(map[string]any{"min_available": minAvailable})
		}

		if err := inv.IncrementBooked(ctx, rows, input.NumRooms); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment booked count")
		}

		if err := repo.Create(ctx, booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			s.metrics.IncOutcome(metrics.BookingOutcomeRejected)
		}
		return nil, err
	}

	s.metrics.IncOutcome(metrics.BookingOutcomeCreated)
	return FromModel(booking), nil
}

// Cancel marks the booking cancelled and releases its held inventory in one
// transaction.
func (s *service) Cancel(ctx context.Context, guestID uuid.UUID, bookingSlug string, reason *string) (*BookingDTO, error) {
	booking, err := s.loadOwned(ctx, guestID, bookingSlug)
	if err != nil {
		return nil, err
	}

	if booking.Status == enums.BookingStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking is already cancelled")
	}
	if !booking.Status.CanTransitionTo(enums.BookingStatusCancelled) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot cancel a booking in status %q", booking.Status)).
			WithDetails(map[string]any{"status": booking.Status})
	}

	priorStatus := booking.Status
	cancelledAt := s.now().UTC()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		inv := s.inventory.WithTx(tx)
		repo := s.repo.WithTx(tx)

		// The status check above ran on a read outside this transaction. The
		// guarded update asserts it is still current, so two racing cancels
		// cannot both release the same inventory.
		changed, err := repo.TransitionStatus(ctx, booking.ID, priorStatus, enums.BookingStatusCancelled, map[string]any{
			"cancellation_reason": reason,
			"cancelled_at":        cancelledAt,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
		}
		if changed == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "booking was modified concurrently").
				WithDetails(map[string]any{"status": priorStatus})
		}

		if err := inv.DecrementBooked(ctx, booking.RoomTypeID, booking.CheckIn, booking.CheckOut, booking.NumRooms); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release inventory")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = enums.BookingStatusCancelled
	booking.CancellationReason = reason
	booking.CancelledAt = &cancelledAt

	s.metrics.IncOutcome(metrics.BookingOutcomeCancelled)
	return FromModel(booking), nil
}

// UpdateStatus advances the booking along the allowed state machine edges.
// Cancellation is excluded here because it must release inventory; use Cancel.
func (s *service) UpdateStatus(ctx context.Context, guestID uuid.UUID, bookingSlug string, next enums.BookingStatus) (*BookingDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid booking status %q", next))
	}
	if next == enums.BookingStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "use the cancel operation to cancel a booking")
	}

	booking, err := s.loadOwned(ctx, guestID, bookingSlug)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move booking from %q to %q", booking.Status, next)).
			WithDetails(map[string]any{"status": booking.Status, "requested": next})
	}

	// Guard on the status the transition was validated against. A concurrent
	// cancel between the read and this update would otherwise be overwritten,
	// leaving an active booking whose inventory was already released.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		changed, err := s.repo.WithTx(tx).TransitionStatus(ctx, booking.ID, booking.Status, next, nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
		}
		if changed == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "booking was modified concurrently").
				WithDetails(map[string]any{"status": booking.Status})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = next
	return FromModel(booking), nil
}

func (s *service) GetBySlug(ctx context.Context, guestID uuid.UUID, bookingSlug string) (*BookingDTO, error) {
	booking, err := s.loadOwned(ctx, guestID, bookingSlug)
	if err != nil {
		return nil, err
	}
	return FromModel(booking), nil
}

func (s *service) ListByGuest(ctx context.Context, guestID uuid.UUID, params pagination.Params) ([]BookingDTO, int64, error) {
	if guestID == uuid.Nil {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "guest id is required")
	}
	bookings, total, err := s.repo.ListByGuest(ctx, guestID, params)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return FromModels(bookings), total, nil
}

// SoftDelete hides a finished booking from the guest's history. Bookings in
// non-terminal states still hold inventory and must be cancelled first.
func (s *service) SoftDelete(ctx context.Context, guestID uuid.UUID, bookingSlug string) error {
	booking, err := s.loadOwned(ctx, guestID, bookingSlug)
	if err != nil {
		return err
	}
	if !booking.Status.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only finished bookings can be deleted")
	}
	if err := s.repo.SoftDelete(ctx, booking.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete booking")
	}
	return nil
}

// loadOwned fetches a booking by slug and verifies guest ownership. A booking
// owned by another guest reads as not found so slugs cannot be probed.
func (s *service) loadOwned(ctx context.Context, guestID uuid.UUID, bookingSlug string) (*models.Booking, error) {
	if guestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest id is required")
	}
	if bookingSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking slug is required")
	}

	booking, err := s.repo.FindBySlug(ctx, bookingSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if booking.GuestID != guestID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	return booking, nil
}
