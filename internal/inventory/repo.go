package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
)

// Repository manages persistence for the per-night room inventory ledger.
// All night ranges are half-open: [start, end), end excluded.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	EnsureRowsExist(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time, totalRooms int) error
	GetForDateRangeWithLock(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) ([]models.RoomDateInventory, error)
	CheckAvailability(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time, numRooms int) (bool, int, error)
	IncrementBooked(ctx context.Context, rows []models.RoomDateInventory, count int) error
	DecrementBooked(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time, count int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// EnsureRowsExist materializes a ledger row for every night in [start, end)
// that does not have one yet. Existing rows keep their total_rooms; a
// concurrent insert racing on the (room_type_id, date) constraint is skipped
// rather than treated as a failure.
func (r *repository) EnsureRowsExist(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time, totalRooms int) error {
	nights := nightsIn(start, end)
	if len(nights) == 0 {
		return nil
	}

	rows := make([]models.RoomDateInventory, 0, len(nights))
	for _, night := range nights {
		rows = append(rows, models.RoomDateInventory{
			RoomTypeID: roomTypeID,
			Date:       night,
			TotalRooms: totalRooms,
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_type_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

// GetForDateRangeWithLock returns the ledger rows for [start, end) ordered by
// date, holding FOR UPDATE locks until the enclosing transaction ends. The
// lock is what serializes concurrent bookings for the same nights; on sqlite
// the clause is skipped and the read is plain.
func (r *repository) GetForDateRangeWithLock(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) ([]models.RoomDateInventory, error) {
	start, end = normalizeDate(start), normalizeDate(end)
	if !start.Before(end) {
		return []models.RoomDateInventory{}, nil
	}

	query := r.db.WithContext(ctx).
		Where("room_type_id = ? AND date >= ? AND date < ?", roomTypeID, start, end).
		Order("date ASC")
	if supportsRowLocks(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []models.RoomDateInventory
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CheckAvailability reports whether numRooms can be booked for every night in
// [start, end), along with the worst-night availability. An empty range is
// vacuously available with min 0. A non-empty range with no materialized rows
// is unavailable: absence of rows means not provisioned, not infinite.
func (r *repository) CheckAvailability(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time, numRooms int) (bool, int, error) {
	start, end = normalizeDate(start), normalizeDate(end)
	if !start.Before(end) {
		return true, 0, nil
	}

	var rows []models.RoomDateInventory
	if err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND date >= ? AND date < ?", roomTypeID, start, end).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return false, 0, err
	}
	if len(rows) == 0 {
		return false, 0, nil
	}

	min := MinAvailable(rows)
	return min >= numRooms, min, nil
}

// IncrementBooked adds count to booked_count on each given row. The rows must
// have been loaded via GetForDateRangeWithLock inside the same transaction.
func (r *repository) IncrementBooked(ctx context.Context, rows []models.RoomDateInventory, count int) error {
	for i := range rows {
		if err := r.db.WithContext(ctx).
			Model(&models.RoomDateInventory{}).
			Where("id = ?", rows[i].ID).
			UpdateColumn("booked_count", gorm.Expr("booked_count + ?", count)).Error; err != nil {
			return err
		}
		rows[i].BookedCount += count
	}
	return nil
}

// DecrementBooked releases count rooms on every night in [start, end),
// flooring booked_count at zero. The rows are reloaded under lock here
// because cancellation does not run an availability check first.
func (r *repository) DecrementBooked(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time, count int) error {
	rows, err := r.GetForDateRangeWithLock(ctx, roomTypeID, start, end)
	if err != nil {
		return err
	}

	for i := range rows {
		next := rows[i].BookedCount - count
		if next < 0 {
			next = 0
		}
		if err := r.db.WithContext(ctx).
			Model(&models.RoomDateInventory{}).
			Where("id = ?", rows[i].ID).
			UpdateColumn("booked_count", next).Error; err != nil {
			return err
		}
	}
	return nil
}

// MinAvailable returns the scarcest night's availability across rows. A
// multi-night booking is only as available as its worst night.
func MinAvailable(rows []models.RoomDateInventory) int {
	if len(rows) == 0 {
		return 0
	}
	min := rows[0].Available()
	for _, row := range rows[1:] {
		if avail := row.Available(); avail < min {
			min = avail
		}
	}
	return min
}

// NightCount returns the number of nights in the half-open range [start, end).
func NightCount(start, end time.Time) int {
	start, end = normalizeDate(start), normalizeDate(end)
	if !start.Before(end) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

func nightsIn(start, end time.Time) []time.Time {
	start, end = normalizeDate(start), normalizeDate(end)
	var nights []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func supportsRowLocks(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
