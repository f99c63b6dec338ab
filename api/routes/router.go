package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wanderstay/wanderstay-backend/api/controllers"
	"github.com/wanderstay/wanderstay-backend/api/middleware"
	"github.com/wanderstay/wanderstay-backend/internal/bookings"
	"github.com/wanderstay/wanderstay-backend/internal/guests"
	"github.com/wanderstay/wanderstay-backend/internal/hotels"
	"github.com/wanderstay/wanderstay-backend/internal/inventory"
	"github.com/wanderstay/wanderstay-backend/internal/locations"
	"github.com/wanderstay/wanderstay-backend/internal/roomtypes"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
	"github.com/wanderstay/wanderstay-backend/pkg/db"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
	"github.com/wanderstay/wanderstay-backend/pkg/metrics"
	pkgredis "github.com/wanderstay/wanderstay-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	promRegistry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	guestService guests.Service,
	hotelService hotels.Service,
	locationService locations.Service,
	roomTypeService roomtypes.Service,
	inventoryService inventory.Service,
	bookingService bookings.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	var idempotencyStore pkgredis.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisClient
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Register is keyed before any guest identity exists; the stored
			// response is bound to the request body hash.
			r.Use(middleware.Idempotency(idempotencyStore, cfg.Booking.IdempotencyTTL, logg))
			r.Post("/register", controllers.AuthRegister(guestService, logg))
			r.Post("/login", controllers.AuthLogin(guestService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Get("/me", controllers.AuthProfile(guestService, logg))
				r.Patch("/me", controllers.AuthUpdateProfile(guestService, logg))
				r.Delete("/me", controllers.AuthDeactivate(guestService, logg))
			})
		})

		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", controllers.HotelList(hotelService, logg))
			r.Get("/{hotelSlug}", controllers.HotelDetail(hotelService, logg))
			r.Get("/{hotelSlug}/locations", controllers.LocationList(locationService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Post("/", controllers.HotelCreate(hotelService, logg))
				r.Patch("/{hotelSlug}", controllers.HotelUpdate(hotelService, logg))
				r.Delete("/{hotelSlug}", controllers.HotelDelete(hotelService, logg))
				r.Post("/{hotelSlug}/locations", controllers.LocationCreate(locationService, logg))
			})
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/{locationSlug}", controllers.LocationDetail(locationService, logg))
			r.Get("/{locationSlug}/room-types", controllers.RoomTypeList(roomTypeService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Patch("/{locationSlug}", controllers.LocationUpdate(locationService, logg))
				r.Delete("/{locationSlug}", controllers.LocationDelete(locationService, logg))
				r.Post("/{locationSlug}/room-types", controllers.RoomTypeCreate(roomTypeService, logg))
			})
		})

		r.Route("/room-types", func(r chi.Router) {
			r.Get("/{roomTypeSlug}", controllers.RoomTypeDetail(roomTypeService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Patch("/{roomTypeSlug}", controllers.RoomTypeUpdate(roomTypeService, logg))
				r.Delete("/{roomTypeSlug}", controllers.RoomTypeDelete(roomTypeService, logg))
			})
		})

		r.Get("/availability", controllers.AvailabilityCheck(inventoryService, logg))

		r.Route("/bookings", func(r chi.Router) {
			// Auth first so idempotency records are scoped to the guest the
			// token names, never replayed across guests or to anonymous
			// callers.
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(idempotencyStore, cfg.Booking.IdempotencyTTL, logg))
			r.Post("/", controllers.BookingCreate(bookingService, logg))
			r.Get("/", controllers.BookingList(bookingService, logg))
			r.Get("/{bookingSlug}", controllers.BookingDetail(bookingService, logg))
			r.Post("/{bookingSlug}/cancel", controllers.BookingCancel(bookingService, logg))
			r.Patch("/{bookingSlug}/status", controllers.BookingUpdateStatus(bookingService, logg))
			r.Delete("/{bookingSlug}", controllers.BookingDelete(bookingService, logg))
		})
	})

	return r
}
