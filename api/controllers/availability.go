package controllers

import (
	"net/http"
	"strings"

	"github.com/wanderstay/wanderstay-backend/api/responses"
	"github.com/wanderstay/wanderstay-backend/api/validators"
	"github.com/wanderstay/wanderstay-backend/internal/inventory"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
)

// AvailabilityCheck answers whether num_rooms can be held for every night in
// [check_in, check_out). It reads without locks, so a positive answer is a
// hint; the booking transaction re-checks under lock.
func AvailabilityCheck(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		roomTypeSlug := strings.TrimSpace(r.URL.Query().Get("room_type"))
		if roomTypeSlug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "room_type query parameter required"))
			return
		}

		checkIn, err := validators.ParseQueryDate(r, "check_in")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		checkOut, err := validators.ParseQueryDate(r, "check_out")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		numRooms, err := validators.ParseQueryInt(r, "num_rooms", 1, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CheckAvailability(r.Context(), inventory.CheckAvailabilityInput{
			RoomTypeSlug: roomTypeSlug,
			CheckIn:      checkIn,
			CheckOut:     checkOut,
			NumRooms:     numRooms,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
