package guests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
)

// Repository handles guest persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to guest operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new guest row.
func (r *Repository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

// FindByID loads a guest by its UUID, excluding soft-deleted rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&guest).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

// FindByPhoneNumber loads a guest by the unique phone number.
func (r *Repository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).
		Where("phone_number = ? AND deleted_at IS NULL", phoneNumber).
		First(&guest).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

// Update saves the provided guest.
func (r *Repository) Update(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

// SoftDelete stamps deleted_at without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", time.Now().UTC()).Error
}
