package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/internal/guests"
	"github.com/wanderstay/wanderstay-backend/internal/inventory"
	"github.com/wanderstay/wanderstay-backend/internal/roomtypes"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
	"github.com/wanderstay/wanderstay-backend/pkg/db"
	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	"github.com/wanderstay/wanderstay-backend/pkg/enums"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
)

type testEnv struct {
	db       *gorm.DB
	svc      Service
	invRepo  inventory.Repository
	guest    *models.Guest
	roomType *models.RoomType
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestEnv(t *testing.T, cfg config.BookingConfig) *testEnv {
	t.Helper()

	dsn := "file:bookings_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Hotel{},
		&models.Location{},
		&models.RoomType{},
		&models.Guest{},
		&models.RoomDateInventory{},
		&models.Booking{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	guest := &models.Guest{Name: "Ada", PhoneNumber: "+15550001111", IsActive: true}
	if err := conn.Create(guest).Error; err != nil {
		t.Fatalf("seed guest: %v", err)
	}

	roomType := &models.RoomType{
		LocationID:     uuid.New(),
		HotelID:        uuid.New(),
		Name:           "Deluxe King",
		Slug:           "deluxe-king",
		BasePrice:      decimal.NewFromInt(100),
		TotalInventory: 10,
		MaxOccupancy:   2,
		IsActive:       true,
	}
	if err := conn.Create(roomType).Error; err != nil {
		t.Fatalf("seed room type: %v", err)
	}

	directory, err := roomtypes.NewDirectory(roomtypes.NewRepository(conn))
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}

	invRepo := inventory.NewRepository(conn)
	svc, err := NewService(
		NewRepository(conn),
		invRepo,
		directory,
		guests.NewRepository(conn),
		db.NewWithConn(conn),
		cfg,
		nil,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	return &testEnv{db: conn, svc: svc, invRepo: invRepo, guest: guest, roomType: roomType}
}

// racingTx runs a hook once before delegating, emulating a concurrent writer
// that commits between the service's pre-check read and its own transaction.
type racingTx struct {
	inner  txRunner
	before func()
}

func (r *racingTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if r.before != nil {
		hook := r.before
		r.before = nil
		hook()
	}
	return r.inner.WithTx(ctx, fn)
}

// serviceWithTxHook builds a second service over the same database whose
// first transaction is preceded by the hook.
func (e *testEnv) serviceWithTxHook(t *testing.T, before func()) Service {
	t.Helper()

	directory, err := roomtypes.NewDirectory(roomtypes.NewRepository(e.db))
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}
	svc, err := NewService(
		NewRepository(e.db),
		e.invRepo,
		directory,
		guests.NewRepository(e.db),
		&racingTx{inner: db.NewWithConn(e.db), before: before},
		config.BookingConfig{},
		nil,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func (e *testEnv) bookedCounts(t *testing.T) []int {
	t.Helper()
	var rows []models.RoomDateInventory
	if err := e.db.Where("room_type_id = ?", e.roomType.ID).Order("date ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load ledger rows: %v", err)
	}
	counts := make([]int, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, row.BookedCount)
	}
	return counts
}

func TestCreateBookingHoldsInventory(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	booking, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 3),
		NumRooms:     7,
		NumGuests:    2,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if booking.Status != enums.BookingStatusPending {
		t.Fatalf("expected pending, got %s", booking.Status)
	}
	if booking.NightCount != 2 {
		t.Fatalf("expected 2 nights, got %d", booking.NightCount)
	}
	if !booking.TotalPrice.Equal(decimal.NewFromInt(1400)) {
		t.Fatalf("expected total 1400, got %s", booking.TotalPrice)
	}
	if booking.Slug == "" {
		t.Fatal("expected a booking slug")
	}

	counts := env.bookedCounts(t)
	if len(counts) != 2 || counts[0] != 7 || counts[1] != 7 {
		t.Fatalf("unexpected ledger state: %v", counts)
	}
}

func TestCreateBookingAutoConfirm(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{AutoConfirm: true})
	booking, err := env.svc.Create(context.Background(), CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 2),
		NumRooms:     1,
		NumGuests:    1,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.Status != enums.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", booking.Status)
	}
}

func TestCreateBookingRejectsWhenInsufficient(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	if _, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 3),
		NumRooms:     7,
		NumGuests:    2,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 3),
		NumRooms:     4,
		NumGuests:    2,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected availability conflict, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["min_available"] != 3 {
		t.Fatalf("expected min_available 3, got %v", typed.Details())
	}

	// Rejection must leave the ledger and booking table untouched.
	counts := env.bookedCounts(t)
	if len(counts) != 2 || counts[0] != 7 || counts[1] != 7 {
		t.Fatalf("ledger mutated by rejected booking: %v", counts)
	}
	var bookingCount int64
	if err := env.db.Model(&models.Booking{}).Count(&bookingCount).Error; err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	if bookingCount != 1 {
		t.Fatalf("expected 1 booking, got %d", bookingCount)
	}
}

func TestCancelReleasesInventoryAndAllowsRebooking(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	booking, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 3),
		NumRooms:     7,
		NumGuests:    2,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	reason := "change of plans"
	cancelled, err := env.svc.Cancel(ctx, env.guest.ID, booking.Slug, &reason)
	if err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	if cancelled.Status != enums.BookingStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil || cancelled.CancellationReason == nil || *cancelled.CancellationReason != reason {
		t.Fatalf("cancellation fields not recorded: %+v", cancelled)
	}

	counts := env.bookedCounts(t)
	if counts[0] != 0 || counts[1] != 0 {
		t.Fatalf("inventory not released: %v", counts)
	}

	// The full capacity is bookable again.
	if _, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 3),
		NumRooms:     10,
		NumGuests:    2,
	}); err != nil {
		t.Fatalf("rebooking after cancel: %v", err)
	}
}

func TestCancelAlreadyCancelled(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	booking, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 2),
		NumRooms:     2,
		NumGuests:    2,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := env.svc.Cancel(ctx, env.guest.ID, booking.Slug, nil); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err = env.svc.Cancel(ctx, env.guest.ID, booking.Slug, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	// A second cancel must not release inventory again.
	counts := env.bookedCounts(t)
	if counts[0] != 0 {
		t.Fatalf("unexpected ledger state: %v", counts)
	}
}

func TestConcurrentCancelReleasesInventoryOnce(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	// A live booking keeps 7 rooms held so a double release would be visible
	// instead of hidden by the ledger's floor at zero.
	if _, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 3),
		NumRooms:     7,
		NumGuests:    2,
	}); err != nil {
		t.Fatalf("create live booking: %v", err)
	}
	target, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 3),
		NumRooms:     2,
		NumGuests:    2,
	})
	if err != nil {
		t.Fatalf("create target booking: %v", err)
	}

	// Both cancels read the booking as pending; the rival commits first.
	racer := env.serviceWithTxHook(t, func() {
		if _, err := env.svc.Cancel(ctx, env.guest.ID, target.Slug, nil); err != nil {
			t.Errorf("rival cancel: %v", err)
		}
	})

	_, err = racer.Cancel(ctx, env.guest.ID, target.Slug, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for the losing cancel, got %v", err)
	}

	// The 2 rooms were released exactly once; the live booking still holds 7.
	counts := env.bookedCounts(t)
	if len(counts) != 2 || counts[0] != 7 || counts[1] != 7 {
		t.Fatalf("inventory released twice: %v", counts)
	}
}

func TestStatusUpdateCannotOverwriteConcurrentCancel(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	booking, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 2),
		NumRooms:     2,
		NumGuests:    2,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// The confirm reads the booking as pending, then a cancel commits before
	// the confirm writes. Letting the confirm through would leave an active
	// booking whose inventory was already released.
	racer := env.serviceWithTxHook(t, func() {
		if _, err := env.svc.Cancel(ctx, env.guest.ID, booking.Slug, nil); err != nil {
			t.Errorf("rival cancel: %v", err)
		}
	})

	_, err = racer.UpdateStatus(ctx, env.guest.ID, booking.Slug, enums.BookingStatusConfirmed)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for the stale confirm, got %v", err)
	}

	var stored models.Booking
	if err := env.db.Where("id = ?", booking.ID).First(&stored).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if stored.Status != enums.BookingStatusCancelled {
		t.Fatalf("cancellation overwritten, status is %s", stored.Status)
	}
	if counts := env.bookedCounts(t); counts[0] != 0 {
		t.Fatalf("unexpected ledger state: %v", counts)
	}
}

func TestCreateBookingZeroNightsRejected(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	_, err := env.svc.Create(context.Background(), CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 1),
		NumRooms:     1,
		NumGuests:    1,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	// The ledger must not have been touched at all.
	if counts := env.bookedCounts(t); len(counts) != 0 {
		t.Fatalf("ledger rows materialized for zero-night booking: %v", counts)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	booking, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 2),
		NumRooms:     1,
		NumGuests:    1,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// Skipping states is rejected.
	_, err = env.svc.UpdateStatus(ctx, env.guest.ID, booking.Slug, enums.BookingStatusCheckedOut)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	// Cancellation goes through Cancel, not UpdateStatus.
	_, err = env.svc.UpdateStatus(ctx, env.guest.ID, booking.Slug, enums.BookingStatusCancelled)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	for _, next := range []enums.BookingStatus{
		enums.BookingStatusConfirmed,
		enums.BookingStatusCheckedIn,
		enums.BookingStatusCheckedOut,
	} {
		updated, err := env.svc.UpdateStatus(ctx, env.guest.ID, booking.Slug, next)
		if err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
		if updated.Status != next {
			t.Fatalf("expected %s, got %s", next, updated.Status)
		}
	}

	// Checked-out is terminal.
	_, err = env.svc.UpdateStatus(ctx, env.guest.ID, booking.Slug, enums.BookingStatusConfirmed)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict from terminal state, got %v", err)
	}
}

func TestBookingOwnership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	booking, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 2),
		NumRooms:     1,
		NumGuests:    1,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	stranger := &models.Guest{Name: "Mallory", PhoneNumber: "+15550002222", IsActive: true}
	if err := env.db.Create(stranger).Error; err != nil {
		t.Fatalf("seed stranger: %v", err)
	}

	_, err = env.svc.GetBySlug(ctx, stranger.ID, booking.Slug)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign booking, got %v", err)
	}

	got, err := env.svc.GetBySlug(ctx, env.guest.ID, booking.Slug)
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if got.ID != booking.ID {
		t.Fatalf("unexpected booking returned: %s", got.ID)
	}
}

func TestSoftDeleteRequiresTerminalStatus(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	booking, err := env.svc.Create(ctx, CreateBookingInput{
		GuestID:      env.guest.ID,
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 2),
		NumRooms:     1,
		NumGuests:    1,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	err = env.svc.SoftDelete(ctx, env.guest.ID, booking.Slug)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	if _, err := env.svc.Cancel(ctx, env.guest.ID, booking.Slug, nil); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := env.svc.SoftDelete(ctx, env.guest.ID, booking.Slug); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	_, err = env.svc.GetBySlug(ctx, env.guest.ID, booking.Slug)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListByGuest(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.BookingConfig{})
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		if _, err := env.svc.Create(ctx, CreateBookingInput{
			GuestID:      env.guest.ID,
			RoomTypeSlug: "deluxe-king",
			CheckIn:      date(2026, 4, day),
			CheckOut:     date(2026, 4, day+1),
			NumRooms:     1,
			NumGuests:    1,
		}); err != nil {
			t.Fatalf("create booking %d: %v", day, err)
		}
	}

	list, total, err := env.svc.ListByGuest(ctx, env.guest.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Fatalf("expected 3 bookings, got total=%d len=%d", total, len(list))
	}
}
