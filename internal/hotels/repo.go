package hotels

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
)

// Repository handles hotel persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to hotel operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new hotel row.
func (r *Repository) Create(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

// FindByID loads a hotel by its UUID, excluding soft-deleted rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&hotel).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

// FindBySlug loads a hotel by its public slug, excluding soft-deleted rows.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND deleted_at IS NULL", slug).
		First(&hotel).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

// List returns active hotels ordered by name with the total count.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Hotel, int64, error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Model(&models.Hotel{}).
		Where("deleted_at IS NULL AND is_active = ?", true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hotels []models.Hotel
	if err := base.
		Order("name ASC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&hotels).Error; err != nil {
		return nil, 0, err
	}
	return hotels, total, nil
}

// SlugExists reports whether any hotel row already uses the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Hotel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves the provided hotel.
func (r *Repository) Update(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

// IncrementLocationCount adjusts the denormalized location counter.
func (r *Repository) IncrementLocationCount(ctx context.Context, hotelID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Hotel{}).
		Where("id = ?", hotelID).
		UpdateColumn("location_count", gorm.Expr("location_count + ?", delta)).Error
}

// SoftDelete stamps deleted_at without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Hotel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", time.Now().UTC()).Error
}
