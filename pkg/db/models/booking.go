package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/enums"
)

// Booking reserves NumRooms units of a room type for the half-open night
// range [CheckIn, CheckOut). Prices are a snapshot taken at booking time.
type Booking struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Slug string    `gorm:"column:slug;not null;uniqueIndex"`

	GuestID    uuid.UUID `gorm:"column:guest_id;type:uuid;not null;index"`
	RoomTypeID uuid.UUID `gorm:"column:room_type_id;type:uuid;not null;index"`
	LocationID uuid.UUID `gorm:"column:location_id;type:uuid;not null;index"`
	HotelID    uuid.UUID `gorm:"column:hotel_id;type:uuid;not null;index"`

	CheckIn  time.Time `gorm:"column:check_in;type:date;not null"`
	CheckOut time.Time `gorm:"column:check_out;type:date;not null"`

	NumRooms   int `gorm:"column:num_rooms;not null;default:1"`
	NumGuests  int `gorm:"column:num_guests;not null;default:1"`
	NightCount int `gorm:"column:night_count;not null"`

	PricePerNight decimal.Decimal `gorm:"column:price_per_night;type:numeric(10,2);not null"`
	TotalPrice    decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`

	Status enums.BookingStatus `gorm:"column:status;type:varchar(50);not null;default:'pending'"`

	SpecialRequests    *string    `gorm:"column:special_requests"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`

	DeletedAt *time.Time `gorm:"column:deleted_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *Booking) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
