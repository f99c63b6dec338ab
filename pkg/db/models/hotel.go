package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hotel is the top-level brand owning locations and room types.
type Hotel struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name          string     `gorm:"column:name;not null"`
	Slug          string     `gorm:"column:slug;not null;uniqueIndex"`
	Description   *string    `gorm:"column:description"`
	ContactPhone  string     `gorm:"column:contact_phone;not null"`
	ContactEmail  *string    `gorm:"column:contact_email"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true"`
	LocationCount int        `gorm:"column:location_count;not null;default:0"`
	DeletedAt     *time.Time `gorm:"column:deleted_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (h *Hotel) BeforeCreate(_ *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
