package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomType is a bookable room category at a location. TotalInventory is the
// configured capacity picked up by newly materialized inventory rows; rows
// created earlier keep the capacity they were created with.
type RoomType struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	LocationID     uuid.UUID       `gorm:"column:location_id;type:uuid;not null;index"`
	HotelID        uuid.UUID       `gorm:"column:hotel_id;type:uuid;not null;index"`
	Name           string          `gorm:"column:name;not null"`
	Slug           string          `gorm:"column:slug;not null;uniqueIndex"`
	Description    *string         `gorm:"column:description"`
	BasePrice      decimal.Decimal `gorm:"column:base_price;type:numeric(10,2);not null"`
	TotalInventory int             `gorm:"column:total_inventory;not null;default:0"`
	MaxOccupancy   int             `gorm:"column:max_occupancy;not null;default:1"`
	DefaultMinStay int             `gorm:"column:default_min_stay;not null;default:1"`
	MaxAdvanceDays int             `gorm:"column:max_advance_days;not null;default:365"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true"`
	DeletedAt      *time.Time      `gorm:"column:deleted_at"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *RoomType) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
