package guests

import (
	"time"

	"github.com/google/uuid"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
)

// GuestDTO exposes guest profile data in API responses. The password hash
// never leaves the service layer.
type GuestDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email,omitempty"`
	PhoneNumber string    `json:"phone_number"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromModel maps the persisted guest into a DTO.
func FromModel(m *models.Guest) *GuestDTO {
	if m == nil {
		return nil
	}
	return &GuestDTO{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
