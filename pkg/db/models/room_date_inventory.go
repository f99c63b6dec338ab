package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomDateInventory is the per-night ledger row for one room type: how many
// rooms exist and how many are booked for that date. Rows are materialized
// lazily on first reference and are never deleted. TotalRooms is captured at
// creation time and is not re-synced when the room type's configured
// inventory changes.
type RoomDateInventory struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	RoomTypeID  uuid.UUID `gorm:"column:room_type_id;type:uuid;not null;uniqueIndex:uq_room_date_inventory_room_type_date"`
	Date        time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_room_date_inventory_room_type_date"`
	TotalRooms  int       `gorm:"column:total_rooms;not null"`
	BookedCount int       `gorm:"column:booked_count;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *RoomDateInventory) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Available is the number of unbooked rooms on this night.
func (r RoomDateInventory) Available() int {
	return r.TotalRooms - r.BookedCount
}
