package locations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
)

// Repository handles location persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to location operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new location row.
func (r *Repository) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// FindByID loads a location by its UUID, excluding soft-deleted rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// FindBySlug loads a location by its public slug, excluding soft-deleted rows.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND deleted_at IS NULL", slug).
		First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// ListByHotel returns active locations for one hotel ordered by name.
func (r *Repository) ListByHotel(ctx context.Context, hotelID uuid.UUID, params pagination.Params) ([]models.Location, int64, error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("hotel_id = ? AND deleted_at IS NULL AND is_active = ?", hotelID, true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var locations []models.Location
	if err := base.
		Order("name ASC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&locations).Error; err != nil {
		return nil, 0, err
	}
	return locations, total, nil
}

// SlugExists reports whether any location row already uses the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves the provided location.
func (r *Repository) Update(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// SoftDelete stamps deleted_at without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", time.Now().UTC()).Error
}
