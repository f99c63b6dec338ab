package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wanderstay/wanderstay-backend/api/responses"
	"github.com/wanderstay/wanderstay-backend/api/validators"
	"github.com/wanderstay/wanderstay-backend/internal/hotels"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
	"github.com/wanderstay/wanderstay-backend/pkg/types"
)

type hotelCreateRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	Description  *string `json:"description,omitempty"`
	ContactPhone string  `json:"contact_phone" validate:"required"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
}

func HotelCreate(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotel service unavailable"))
			return
		}

		var payload hotelCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotel, err := svc.Create(r.Context(), hotels.CreateHotelInput{
			Name:         payload.Name,
			Description:  payload.Description,
			ContactPhone: payload.ContactPhone,
			ContactEmail: payload.ContactEmail,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, hotel)
	}
}

func HotelDetail(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotel service unavailable"))
			return
		}

		hotel, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "hotelSlug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, hotel)
	}
}

func HotelList(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotel service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, total, err := svc.List(r.Context(), params)
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

type hotelUpdateRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func HotelUpdate(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotel service unavailable"))
			return
		}

		var payload hotelUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotel, err := svc.Update(r.Context(), chi.URLParam(r, "hotelSlug"), hotels.UpdateHotelInput{
			Name:         payload.Name,
			Description:  payload.Description,
			ContactPhone: payload.ContactPhone,
			ContactEmail: payload.ContactEmail,
			IsActive:     payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, hotel)
	}
}

func HotelDelete(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotel service unavailable"))
			return
		}

		if err := svc.SoftDelete(r.Context(), chi.URLParam(r, "hotelSlug")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
