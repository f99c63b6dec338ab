package roomtypes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
)

// RoomTypeDTO exposes room type data in API responses.
type RoomTypeDTO struct {
	ID             uuid.UUID       `json:"id"`
	LocationID     uuid.UUID       `json:"location_id"`
	HotelID        uuid.UUID       `json:"hotel_id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    *string         `json:"description,omitempty"`
	BasePrice      decimal.Decimal `json:"base_price"`
	TotalInventory int             `json:"total_inventory"`
	MaxOccupancy   int             `json:"max_occupancy"`
	DefaultMinStay int             `json:"default_min_stay"`
	MaxAdvanceDays int             `json:"max_advance_days"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// FromModel maps the persisted room type into a DTO.
func FromModel(m *models.RoomType) *RoomTypeDTO {
	if m == nil {
		return nil
	}
	return &RoomTypeDTO{
		ID:             m.ID,
		LocationID:     m.LocationID,
		HotelID:        m.HotelID,
		Name:           m.Name,
		Slug:           m.Slug,
		Description:    m.Description,
		BasePrice:      m.BasePrice,
		TotalInventory: m.TotalInventory,
		MaxOccupancy:   m.MaxOccupancy,
		DefaultMinStay: m.DefaultMinStay,
		MaxAdvanceDays: m.MaxAdvanceDays,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromModels maps a page of room types into DTOs.
func FromModels(ms []models.RoomType) []RoomTypeDTO {
	dtos := make([]RoomTypeDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
