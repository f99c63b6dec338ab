package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/wanderstay/wanderstay-backend/api/responses"
	"github.com/wanderstay/wanderstay-backend/api/validators"
	"github.com/wanderstay/wanderstay-backend/internal/roomtypes"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
	"github.com/wanderstay/wanderstay-backend/pkg/types"
)

type roomTypeCreateRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Description    *string         `json:"description,omitempty"`
	BasePrice      decimal.Decimal `json:"base_price" validate:"required"`
	TotalInventory int             `json:"total_inventory" validate:"required,gte=1"`
	MaxOccupancy   int             `json:"max_occupancy" validate:"omitempty,gte=1"`
	DefaultMinStay int             `json:"default_min_stay" validate:"omitempty,gte=1"`
	MaxAdvanceDays int             `json:"max_advance_days" validate:"omitempty,gte=1"`
}

// RoomTypeCreate registers a sellable room category under the location named
// in the URL.
func RoomTypeCreate(svc roomtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room type service unavailable"))
			return
		}

		var payload roomTypeCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.BasePrice.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "base_price must not be negative"))
			return
		}

		roomType, err := svc.Create(r.Context(), chi.URLParam(r, "locationSlug"), roomtypes.CreateRoomTypeInput{
			Name:           payload.Name,
			Description:    payload.Description,
			BasePrice:      payload.BasePrice,
			TotalInventory: payload.TotalInventory,
			MaxOccupancy:   payload.MaxOccupancy,
			DefaultMinStay: payload.DefaultMinStay,
			MaxAdvanceDays: payload.MaxAdvanceDays,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, roomType)
	}
}

func RoomTypeDetail(svc roomtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room type service unavailable"))
			return
		}

		roomType, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "roomTypeSlug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, roomType)
	}
}

func RoomTypeList(svc roomtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room type service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, total, err := svc.ListByLocation(r.Context(), chi.URLParam(r, "locationSlug"), params)
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

type roomTypeUpdateRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string          `json:"description,omitempty"`
	BasePrice      *decimal.Decimal `json:"base_price,omitempty"`
	TotalInventory *int             `json:"total_inventory,omitempty" validate:"omitempty,gte=1"`
	MaxOccupancy   *int             `json:"max_occupancy,omitempty" validate:"omitempty,gte=1"`
	DefaultMinStay *int             `json:"default_min_stay,omitempty" validate:"omitempty,gte=1"`
	MaxAdvanceDays *int             `json:"max_advance_days,omitempty" validate:"omitempty,gte=1"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

func RoomTypeUpdate(svc roomtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room type service unavailable"))
			return
		}

		var payload roomTypeUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.BasePrice != nil && payload.BasePrice.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "base_price must not be negative"))
			return
		}

		roomType, err := svc.Update(r.Context(), chi.URLParam(r, "roomTypeSlug"), roomtypes.UpdateRoomTypeInput{
			Name:           payload.Name,
			Description:    payload.Description,
			BasePrice:      payload.BasePrice,
			TotalInventory: payload.TotalInventory,
			MaxOccupancy:   payload.MaxOccupancy,
			DefaultMinStay: payload.DefaultMinStay,
			MaxAdvanceDays: payload.MaxAdvanceDays,
			IsActive:       payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, roomType)
	}
}

func RoomTypeDelete(svc roomtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room type service unavailable"))
			return
		}

		if err := svc.SoftDelete(r.Context(), chi.URLParam(r, "roomTypeSlug")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
