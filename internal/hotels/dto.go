package hotels

import (
	"time"

	"github.com/google/uuid"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
)

// HotelDTO exposes hotel data in API responses.
type HotelDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   *string   `json:"description,omitempty"`
	ContactPhone  string    `json:"contact_phone"`
	ContactEmail  *string   `json:"contact_email,omitempty"`
	IsActive      bool      `json:"is_active"`
	LocationCount int       `json:"location_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromModel maps the persisted hotel into a DTO.
func FromModel(m *models.Hotel) *HotelDTO {
	if m == nil {
		return nil
	}
	return &HotelDTO{
		ID:            m.ID,
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   m.Description,
		ContactPhone:  m.ContactPhone,
		ContactEmail:  m.ContactEmail,
		IsActive:      m.IsActive,
		LocationCount: m.LocationCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromModels maps a page of hotels into DTOs.
func FromModels(ms []models.Hotel) []HotelDTO {
	dtos := make([]HotelDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
