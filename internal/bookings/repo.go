package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	"github.com/wanderstay/wanderstay-backend/pkg/enums"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
)

// Repository manages booking persistence. Mutating calls are expected to run
// inside the workflow's transaction via WithTx.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.Booking) error
	FindBySlug(ctx context.Context, slug string) (*models.Booking, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, params pagination.Params) ([]models.Booking, int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enums.BookingStatus, extra map[string]any) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a booking repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND deleted_at IS NULL", slug).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByGuest(ctx context.Context, guestID uuid.UUID, params pagination.Params) ([]models.Booking, int64, error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("guest_id = ? AND deleted_at IS NULL", guestID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	if err := base.
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// TransitionStatus flips the booking's status only while the row still holds
// the expected prior status. The returned row count tells the caller whether
// it won the transition or lost to a concurrent writer.
func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enums.BookingStatus, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for column, value := range extra {
		updates[column] = value
	}
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ? AND deleted_at IS NULL", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", time.Now().UTC()).Error
}
