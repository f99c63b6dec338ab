package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wanderstay/wanderstay-backend/api/responses"
	"github.com/wanderstay/wanderstay-backend/api/validators"
	"github.com/wanderstay/wanderstay-backend/internal/locations"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
	"github.com/wanderstay/wanderstay-backend/pkg/types"
)

type locationCreateRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Description  *string  `json:"description,omitempty"`
	Address      string   `json:"address" validate:"required"`
	City         string   `json:"city" validate:"required"`
	State        string   `json:"state" validate:"required"`
	Country      string   `json:"country" validate:"required"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	ContactPhone string   `json:"contact_phone" validate:"required"`
	ContactEmail *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
}

// LocationCreate adds a property under the hotel named in the URL.
func LocationCreate(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "location service unavailable"))
			return
		}

		var payload locationCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		location, err := svc.Create(r.Context(), chi.URLParam(r, "hotelSlug"), locations.CreateLocationInput{
			Name:         payload.Name,
			Description:  payload.Description,
			Address:      payload.Address,
			City:         payload.City,
			State:        payload.State,
			Country:      payload.Country,
			Latitude:     payload.Latitude,
			Longitude:    payload.Longitude,
			ContactPhone: payload.ContactPhone,
			ContactEmail: payload.ContactEmail,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, location)
	}
}

func LocationDetail(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "location service unavailable"))
			return
		}

		location, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "locationSlug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, location)
	}
}

func LocationList(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "location service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, total, err := svc.ListByHotel(r.Context(), chi.URLParam(r, "hotelSlug"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessPage(w, items, types.Pagination{
			Total:  total,
			Offset: params.Offset,
			Limit:  params.Limit,
		})
	}
}

type locationUpdateRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description,omitempty"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`
	Country      *string  `json:"country,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	ContactPhone *string  `json:"contact_phone,omitempty"`
	ContactEmail *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

func LocationUpdate(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "location service unavailable"))
			return
		}

		var payload locationUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		location, err := svc.Update(r.Context(), chi.URLParam(r, "locationSlug"), locations.UpdateLocationInput{
			Name:         payload.Name,
			Description:  payload.Description,
			Address:      payload.Address,
			City:         payload.City,
			State:        payload.State,
			Country:      payload.Country,
			Latitude:     payload.Latitude,
			Longitude:    payload.Longitude,
			ContactPhone: payload.ContactPhone,
			ContactEmail: payload.ContactEmail,
			IsActive:     payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, location)
	}
}

func LocationDelete(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "location service unavailable"))
			return
		}

		if err := svc.SoftDelete(r.Context(), chi.URLParam(r, "locationSlug")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
