package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wanderstay/wanderstay-backend/api/middleware"
	"github.com/wanderstay/wanderstay-backend/api/responses"
	"github.com/wanderstay/wanderstay-backend/api/validators"
	"github.com/wanderstay/wanderstay-backend/internal/bookings"
	"github.com/wanderstay/wanderstay-backend/pkg/enums"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
	"github.com/wanderstay/wanderstay-backend/pkg/types"
)

const bookingDateLayout = "2006-01-02"

type bookingCreateRequest struct {
	RoomTypeSlug    string  `json:"room_type_slug" validate:"required"`
	CheckIn         string  `json:"check_in" validate:"required"`
	CheckOut        string  `json:"check_out" validate:"required"`
	NumRooms        int     `json:"num_rooms" validate:"required,gte=1,lte=50"`
	NumGuests       int     `json:"num_guests" validate:"required,gte=1"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=2000"`
}

// BookingCreate places a hold on inventory for every night of the stay and
// records the booking in the same transaction.
func BookingCreate(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		guestID := middleware.GuestIDFromContext(r.Context())
		if guestID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "guest context missing"))
			return
		}

		var payload bookingCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		checkIn, err := parseBookingDate("check_in", payload.CheckIn)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		checkOut, err := parseBookingDate("check_out", payload.CheckOut)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Create(r.Context(), bookings.CreateBookingInput{
			GuestID:         guestID,
			RoomTypeSlug:    payload.RoomTypeSlug,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			NumRooms:        payload.NumRooms,
			NumGuests:       payload.NumGuests,
			SpecialRequests: payload.SpecialRequests,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, booking)
	}
}

func BookingList(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		guestID := middleware.GuestIDFromContext(r.Context())
		if guestID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "guest context missing"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, total, err := svc.ListByGuest(r.Context(), guestID, params)
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

func BookingDetail(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		guestID := middleware.GuestIDFromContext(r.Context())
		if guestID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "guest context missing"))
			return
		}

		booking, err := svc.GetBySlug(r.Context(), guestID, chi.URLParam(r, "bookingSlug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, booking)
	}
}

type bookingCancelRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=2000"`
}

// BookingCancel releases the booking's inventory hold along with the status
// change. The request body is optional.
func BookingCancel(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		guestID := middleware.GuestIDFromContext(r.Context())
		if guestID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "guest context missing"))
			return
		}

		var payload bookingCancelRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		booking, err := svc.Cancel(r.Context(), guestID, chi.URLParam(r, "bookingSlug"), payload.Reason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, booking)
	}
}

type bookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func BookingUpdateStatus(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		guestID := middleware.GuestIDFromContext(r.Context())
		if guestID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "guest context missing"))
			return
		}

		var payload bookingStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseBookingStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		booking, err := svc.UpdateStatus(r.Context(), guestID, chi.URLParam(r, "bookingSlug"), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, booking)
	}
}

func BookingDelete(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		guestID := middleware.GuestIDFromContext(r.Context())
		if guestID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "guest context missing"))
			return
		}

		if err := svc.SoftDelete(r.Context(), guestID, chi.URLParam(r, "bookingSlug")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseBookingDate(field, value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(bookingDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, field+" must be formatted as YYYY-MM-DD")
	}
	return parsed, nil
}
