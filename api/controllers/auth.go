package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/wanderstay/wanderstay-backend/api/middleware"
	"github.com/wanderstay/wanderstay-backend/api/responses"
	"github.com/wanderstay/wanderstay-backend/api/validators"
	"github.com/wanderstay/wanderstay-backend/internal/guests"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
)

type registerRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber string  `json:"phone_number" validate:"required,e164"`
	Password    string  `json:"password" validate:"required,min=8"`
}

// AuthRegister creates a guest account and returns an access token so the
// client can skip a follow-up login.
func AuthRegister(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guest service unavailable"))
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), guests.RegisterInput{
			Name:        payload.Name,
			Email:       payload.Email,
			PhoneNumber: payload.PhoneNumber,
			Password:    payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Password    string `json:"password" validate:"required"`
}

func AuthLogin(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guest service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), guests.LoginInput{
			PhoneNumber: payload.PhoneNumber,
			Password:    payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthProfile returns the authenticated guest's profile.
func AuthProfile(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guest service unavailable"))
			return
		}

		guestID := middleware.GuestIDFromContext(r.Context())
		if guestID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "guest context missing"))
			return
		}

		profile, err := svc.GetProfile(r.Context(), guestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type profileUpdateRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

func AuthUpdateProfile(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guest service unavailable"))
			return
		}

		guestID := middleware.GuestIDFromContext(r.Context())
		if guestID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "guest context missing"))
			return
		}

		var payload profileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), guestID, guests.UpdateProfileInput{
			Name:  payload.Name,
			Email: payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// AuthDeactivate disables the authenticated guest's account.
func AuthDeactivate(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guest service unavailable"))
			return
		}

		guestID := middleware.GuestIDFromContext(r.Context())
		if guestID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "guest context missing"))
			return
		}

		if err := svc.Deactivate(r.Context(), guestID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
