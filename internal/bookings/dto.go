package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	"github.com/wanderstay/wanderstay-backend/pkg/enums"
)

// BookingDTO exposes booking data in API responses.
type BookingDTO struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	GuestID    uuid.UUID `json:"guest_id"`
	RoomTypeID uuid.UUID `json:"room_type_id"`
	LocationID uuid.UUID `json:"location_id"`
	HotelID    uuid.UUID `json:"hotel_id"`

	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	NumRooms   int       `json:"num_rooms"`
	NumGuests  int       `json:"num_guests"`
	NightCount int       `json:"night_count"`

	PricePerNight decimal.Decimal `json:"price_per_night"`
	TotalPrice    decimal.Decimal `json:"total_price"`

	Status enums.BookingStatus `json:"status"`

	SpecialRequests    *string    `json:"special_requests,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModel maps the persisted booking into a DTO.
func FromModel(m *models.Booking) *BookingDTO {
	if m == nil {
		return nil
	}
	return &BookingDTO{
		ID:                 m.ID,
		Slug:               m.Slug,
		GuestID:            m.GuestID,
		RoomTypeID:         m.RoomTypeID,
		LocationID:         m.LocationID,
		HotelID:            m.HotelID,
		CheckIn:            m.CheckIn,
		CheckOut:           m.CheckOut,
		NumRooms:           m.NumRooms,
		NumGuests:          m.NumGuests,
		NightCount:         m.NightCount,
		PricePerNight:      m.PricePerNight,
		TotalPrice:         m.TotalPrice,
		Status:             m.Status,
		SpecialRequests:    m.SpecialRequests,
		CancellationReason: m.CancellationReason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// FromModels maps a page of bookings into DTOs.
func FromModels(ms []models.Booking) []BookingDTO {
	dtos := make([]BookingDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
