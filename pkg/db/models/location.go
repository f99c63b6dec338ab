package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a physical property belonging to a hotel.
type Location struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	HotelID      uuid.UUID  `gorm:"column:hotel_id;type:uuid;not null;index"`
	Name         string     `gorm:"column:name;not null"`
	Slug         string     `gorm:"column:slug;not null;uniqueIndex"`
	Description  *string    `gorm:"column:description"`
	Address      string     `gorm:"column:address;not null"`
	City         string     `gorm:"column:city;not null"`
	State        string     `gorm:"column:state;not null"`
	Country      string     `gorm:"column:country;not null"`
	Latitude     *float64   `gorm:"column:latitude"`
	Longitude    *float64   `gorm:"column:longitude"`
	ContactPhone string     `gorm:"column:contact_phone;not null"`
	ContactEmail *string    `gorm:"column:contact_email"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	DeletedAt    *time.Time `gorm:"column:deleted_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (l *Location) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
