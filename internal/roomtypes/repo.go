package roomtypes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
)

// Repository handles room type persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to room type operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new room type row.
func (r *Repository) Create(ctx context.Context, roomType *models.RoomType) error {
	return r.db.WithContext(ctx).Create(roomType).Error
}

// FindByID loads a room type by its UUID, excluding soft-deleted rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RoomType, error) {
	var roomType models.RoomType
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&roomType).Error; err != nil {
		return nil, err
	}
	return &roomType, nil
}

// FindBySlug loads a room type by its public slug, excluding soft-deleted rows.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.RoomType, error) {
	var roomType models.RoomType
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND deleted_at IS NULL", slug).
		First(&roomType).Error; err != nil {
		return nil, err
	}
	return &roomType, nil
}

// ListByLocation returns active room types for one location ordered by name.
func (r *Repository) ListByLocation(ctx context.Context, locationID uuid.UUID, params pagination.Params) ([]models.RoomType, int64, error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Model(&models.RoomType{}).
		Where("location_id = ? AND deleted_at IS NULL AND is_active = ?", locationID, true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roomTypes []models.RoomType
	if err := base.
		Order("name ASC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&roomTypes).Error; err != nil {
		return nil, 0, err
	}
	return roomTypes, total, nil
}

// SlugExists reports whether any room type row already uses the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RoomType{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves the provided room type.
func (r *Repository) Update(ctx context.Context, roomType *models.RoomType) error {
	return r.db.WithContext(ctx).Save(roomType).Error
}

// SoftDelete stamps deleted_at without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.RoomType{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", time.Now().UTC()).Error
}
