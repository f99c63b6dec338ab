package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.RoomDateInventory{}); err != nil {
		t.Fatalf("migrate inventory: %v", err)
	}
	return db
}

func TestEnsureRowsExistMaterializesNights(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	roomType := uuid.New()

	if err := repo.EnsureRowsExist(ctx, roomType, date(2026, 3, 1), date(2026, 3, 4), 10); err != nil {
		t.Fatalf("ensure rows: %v", err)
	}

	var rows []models.RoomDateInventory
	if err := db.Where("room_type_id = ?", roomType).Order("date ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 nights for [03-01, 03-04), got %d", len(rows))
	}
	for _, row := range rows {
		if row.TotalRooms != 10 || row.BookedCount != 0 {
			t.Fatalf("unexpected row state: %+v", row)
		}
	}
	if rows[2].Date.Day() != 3 {
		t.Fatalf("expected last night to be 03-03, got %v", rows[2].Date)
	}
}

func TestEnsureRowsExistIdempotent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	roomType := uuid.New()

	if err := repo.EnsureRowsExist(ctx, roomType, date(2026, 3, 1), date(2026, 3, 3), 10); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := db.Model(&models.RoomDateInventory{}).
		Where("room_type_id = ?", roomType).
		UpdateColumn("booked_count", 4).Error; err != nil {
		t.Fatalf("mark booked: %v", err)
	}

	// Second call with a different capacity must not touch existing rows.
	if err := repo.EnsureRowsExist(ctx, roomType, date(2026, 3, 1), date(2026, 3, 3), 99); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	var rows []models.RoomDateInventory
	if err := db.Where("room_type_id = ?", roomType).Find(&rows).Error; err != nil {
		t.Fatalf("load rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.TotalRooms != 10 || row.BookedCount != 4 {
			t.Fatalf("second ensure mutated existing row: %+v", row)
		}
	}
}

func TestEnsureRowsExistEmptyRange(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	roomType := uuid.New()

	if err := repo.EnsureRowsExist(ctx, roomType, date(2026, 3, 1), date(2026, 3, 1), 10); err != nil {
		t.Fatalf("ensure empty range: %v", err)
	}
	if err := repo.EnsureRowsExist(ctx, roomType, date(2026, 3, 5), date(2026, 3, 1), 10); err != nil {
		t.Fatalf("ensure inverted range: %v", err)
	}

	var count int64
	if err := db.Model(&models.RoomDateInventory{}).Where("room_type_id = ?", roomType).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows for empty range, got %d", count)
	}
}

func TestGetForDateRangeWithLockHalfOpen(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	roomType := uuid.New()

	if err := repo.EnsureRowsExist(ctx, roomType, date(2026, 3, 1), date(2026, 3, 5), 10); err != nil {
		t.Fatalf("ensure rows: %v", err)
	}

	rows, err := repo.GetForDateRangeWithLock(ctx, roomType, date(2026, 3, 2), date(2026, 3, 4))
	if err != nil {
		t.Fatalf("locked read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for [03-02, 03-04), got %d", len(rows))
	}
	if rows[0].Date.Day() != 2 || rows[1].Date.Day() != 3 {
		t.Fatalf("rows out of order or wrong nights: %v, %v", rows[0].Date, rows[1].Date)
	}

	empty, err := repo.GetForDateRangeWithLock(ctx, roomType, date(2026, 3, 2), date(2026, 3, 2))
	if err != nil {
		t.Fatalf("empty range read: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no rows for empty range, got %d", len(empty))
	}
}

func TestCheckAvailabilityWorstNightBinding(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	roomType := uuid.New()

	if err := repo.EnsureRowsExist(ctx, roomType, date(2026, 3, 1), date(2026, 3, 4), 10); err != nil {
		t.Fatalf("ensure rows: %v", err)
	}
	// Make 03-02 the scarcest night.
	if err := db.Model(&models.RoomDateInventory{}).
		Where("room_type_id = ? AND date = ?", roomType, date(2026, 3, 2)).
		UpdateColumn("booked_count", 8).Error; err != nil {
		t.Fatalf("mark booked: %v", err)
	}

	available, min, err := repo.CheckAvailability(ctx, roomType, date(2026, 3, 1), date(2026, 3, 4), 3)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}
	if available || min != 2 {
		t.Fatalf("expected (false, 2), got (%v, %d)", available, min)
	}

	available, min, err = repo.CheckAvailability(ctx, roomType, date(2026, 3, 1), date(2026, 3, 4), 2)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}
	if !available || min != 2 {
		t.Fatalf("expected (true, 2), got (%v, %d)", available, min)
	}
}

func TestCheckAvailabilityZeroRowCases(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	roomType := uuid.New()

	// Empty range is vacuously available.
	available, min, err := repo.CheckAvailability(ctx, roomType, date(2026, 1, 1), date(2026, 1, 1), 1)
	if err != nil {
		t.Fatalf("check empty range: %v", err)
	}
	if !available || min != 0 {
		t.Fatalf("expected (true, 0) for empty range, got (%v, %d)", available, min)
	}

	// Non-empty range with no materialized rows is not provisioned.
	available, min, err = repo.CheckAvailability(ctx, roomType, date(2026, 1, 1), date(2026, 1, 3), 1)
	if err != nil {
		t.Fatalf("check unprovisioned range: %v", err)
	}
	if available || min != 0 {
		t.Fatalf("expected (false, 0) for unprovisioned range, got (%v, %d)", available, min)
	}
}

func TestIncrementBooked(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	roomType := uuid.New()

	if err := repo.EnsureRowsExist(ctx, roomType, date(2026, 3, 1), date(2026, 3, 3), 10); err != nil {
		t.Fatalf("ensure rows: %v", err)
	}
	rows, err := repo.GetForDateRangeWithLock(ctx, roomType, date(2026, 3, 1), date(2026, 3, 3))
	if err != nil {
		t.Fatalf("locked read: %v", err)
	}

	if err := repo.IncrementBooked(ctx, rows, 7); err != nil {
		t.Fatalf("increment: %v", err)
	}

	var persisted []models.RoomDateInventory
	if err := db.Where("room_type_id = ?", roomType).Find(&persisted).Error; err != nil {
		t.Fatalf("load rows: %v", err)
	}
	for _, row := range persisted {
		if row.BookedCount != 7 {
			t.Fatalf("expected booked_count 7, got %d", row.BookedCount)
		}
	}
	for _, row := range rows {
		if row.BookedCount != 7 {
			t.Fatalf("expected in-memory booked_count 7, got %d", row.BookedCount)
		}
	}
}

func TestDecrementBookedFloorsAtZero(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	roomType := uuid.New()

	if err := repo.EnsureRowsExist(ctx, roomType, date(2026, 3, 1), date(2026, 3, 3), 10); err != nil {
		t.Fatalf("ensure rows: %v", err)
	}
	rows, err := repo.GetForDateRangeWithLock(ctx, roomType, date(2026, 3, 1), date(2026, 3, 3))
	if err != nil {
		t.Fatalf("locked read: %v", err)
	}
	if err := repo.IncrementBooked(ctx, rows, 3); err != nil {
		t.Fatalf("increment: %v", err)
	}

	// Release more than was booked; counts must clamp at zero.
	if err := repo.DecrementBooked(ctx, roomType, date(2026, 3, 1), date(2026, 3, 3), 5); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := repo.DecrementBooked(ctx, roomType, date(2026, 3, 1), date(2026, 3, 3), 5); err != nil {
		t.Fatalf("repeat decrement: %v", err)
	}

	var persisted []models.RoomDateInventory
	if err := db.Where("room_type_id = ?", roomType).Find(&persisted).Error; err != nil {
		t.Fatalf("load rows: %v", err)
	}
	for _, row := range persisted {
		if row.BookedCount != 0 {
			t.Fatalf("expected booked_count 0, got %d", row.BookedCount)
		}
	}
}

func TestMinAvailable(t *testing.T) {
	t.Parallel()

	rows := []models.RoomDateInventory{
		{TotalRooms: 10, BookedCount: 2},
		{TotalRooms: 10, BookedCount: 9},
		{TotalRooms: 10, BookedCount: 5},
	}
	if got := MinAvailable(rows); got != 1 {
		t.Fatalf("expected min 1, got %d", got)
	}
	if got := MinAvailable(nil); got != 0 {
		t.Fatalf("expected min 0 for no rows, got %d", got)
	}
}

func TestNightCount(t *testing.T) {
	t.Parallel()

	if got := NightCount(date(2026, 3, 1), date(2026, 3, 4)); got != 3 {
		t.Fatalf("expected 3 nights, got %d", got)
	}
	if got := NightCount(date(2026, 3, 1), date(2026, 3, 1)); got != 0 {
		t.Fatalf("expected 0 nights for empty range, got %d", got)
	}
	if got := NightCount(date(2026, 3, 4), date(2026, 3, 1)); got != 0 {
		t.Fatalf("expected 0 nights for inverted range, got %d", got)
	}
}
