package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guest is a registered customer identified by phone number.
type Guest struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Email       *string    `gorm:"column:email"`
	PhoneNumber string     `gorm:"column:phone_number;not null;uniqueIndex"`
	Password    *string    `gorm:"column:password"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	DeletedAt   *time.Time `gorm:"column:deleted_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (g *Guest) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
