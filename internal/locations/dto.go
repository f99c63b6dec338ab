package locations

import (
	"time"

	"github.com/google/uuid"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
)

// LocationDTO exposes location data in API responses.
type LocationDTO struct {
	ID           uuid.UUID `json:"id"`
	HotelID      uuid.UUID `json:"hotel_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description,omitempty"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromModel maps the persisted location into a DTO.
func FromModel(m *models.Location) *LocationDTO {
	if m == nil {
		return nil
	}
	return &LocationDTO{
		ID:           m.ID,
		HotelID:      m.HotelID,
		Name:         m.Name,
		Slug:         m.Slug,
		Description:  m.Description,
		Address:      m.Address,
		City:         m.City,
		State:        m.State,
		Country:      m.Country,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromModels maps a page of locations into DTOs.
func FromModels(ms []models.Location) []LocationDTO {
	dtos := make([]LocationDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
