package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/wanderstay/wanderstay-backend/internal/guests"
	"github.com/wanderstay/wanderstay-backend/internal/hotels"
	"github.com/wanderstay/wanderstay-backend/internal/inventory"
	"github.com/wanderstay/wanderstay-backend/internal/locations"
	"github.com/wanderstay/wanderstay-backend/internal/roomtypes"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
	"github.com/wanderstay/wanderstay-backend/pkg/security"
	"github.com/wanderstay/wanderstay-backend/pkg/slug"
)

var (
	hotelNames = []string{
		"Wanderstay Grand", "Harbor Lights", "Cedar & Stone", "The Meridian", "Northgate Inn",
		"Lakeview Terrace", "The Foundry Hotel", "Juniper House", "Saltair Lodge", "The Arbor",
	}
	cityPool = []struct {
		city, state, country string
	}{
		{"Lisbon", "", "Portugal"},
		{"Austin", "TX", "USA"},
		{"Kyoto", "", "Japan"},
		{"Mexico City", "CDMX", "Mexico"},
		{"Berlin", "", "Germany"},
		{"Cape Town", "", "South Africa"},
	}
	roomTypeTemplates = []struct {
		name      string
		price     int64
		inventory int
		occupancy int
	}{
		{"Standard Queen", 95, 20, 2},
		{"Deluxe King", 145, 10, 2},
		{"Family Suite", 210, 6, 4},
		{"Penthouse", 450, 2, 4},
	}
)

// Seeder populates a development database with a browsable hotel directory,
// registered guests and pre-materialized inventory.
type Seeder struct {
	cfg         config.SeedConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger

	hotels    *hotels.Repository
	locations *locations.Repository
	roomTypes *roomtypes.Repository
	guests    *guests.Repository
	inventory inventory.Repository
}

// NewSeeder wires a seeder with the repositories it writes through.
func NewSeeder(
	cfg config.SeedConfig,
	passwordCfg config.PasswordConfig,
	logg *logger.Logger,
	hotelRepo *hotels.Repository,
	locationRepo *locations.Repository,
	roomTypeRepo *roomtypes.Repository,
	guestRepo *guests.Repository,
	inventoryRepo inventory.Repository,
) (*Seeder, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if hotelRepo == nil || locationRepo == nil || roomTypeRepo == nil || guestRepo == nil || inventoryRepo == nil {
		return nil, fmt.Errorf("all repositories required")
	}
	return &Seeder{
		cfg:         cfg,
		passwordCfg: passwordCfg,
		logg:        logg,
		hotels:      hotelRepo,
		locations:   locationRepo,
		roomTypes:   roomTypeRepo,
		guests:      guestRepo,
		inventory:   inventoryRepo,
	}, nil
}

// Run seeds every entity type, aggregating per-entity failures so one bad row
// does not abort the whole pass.
func (s *Seeder) Run(ctx context.Context) error {
	var errs []error
	if err := s.seedDirectory(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.seedGuests(ctx); err != nil {
		errs = append(errs, err)
	}
	return multierr.Combine(errs...)
}

func (s *Seeder) seedDirectory(ctx context.Context) error {
	var errs []error
	for i := 0; i < s.cfg.Hotels; i++ {
		name := hotelNames[i%len(hotelNames)]
		if i >= len(hotelNames) {
			name = fmt.Sprintf("%s %d", name, i/len(hotelNames)+1)
		}
		if err := s.seedHotel(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("seed hotel %q: %w", name, err))
		}
	}
	return multierr.Combine(errs...)
}

func (s *Seeder) seedHotel(ctx context.Context, name string) error {
	hotelSlug, err := slug.GenerateUnique(name, func(candidate string) (bool, error) {
		return s.hotels.SlugExists(ctx, candidate)
	})
	if err != nil {
		return err
	}
	hotel := &models.Hotel{
		Name:         name,
		Slug:         hotelSlug,
		ContactPhone: "+15550100000",
		IsActive:     true,
	}
	if err := s.hotels.Create(ctx, hotel); err != nil {
		return err
	}

	var errs []error
	for l := 0; l < s.cfg.LocationsPer; l++ {
		spot := cityPool[l%len(cityPool)]
		if err := s.seedLocation(ctx, hotel, spot.city, spot.state, spot.country); err != nil {
			errs = append(errs, fmt.Errorf("seed location %s: %w", spot.city, err))
		}
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"hotel": hotel.Slug, "locations": s.cfg.LocationsPer})
	s.logg.Info(logCtx, "seeded hotel")
	return multierr.Combine(errs...)
}

func (s *Seeder) seedLocation(ctx context.Context, hotel *models.Hotel, city, state, country string) error {
	name := fmt.Sprintf("%s %s", hotel.Name, city)
	locationSlug, err := slug.GenerateUnique(name, func(candidate string) (bool, error) {
		return s.locations.SlugExists(ctx, candidate)
	})
	if err != nil {
		return err
	}
	location := &models.Location{
		HotelID:      hotel.ID,
		Name:         name,
		Slug:         locationSlug,
		Address:      "1 Main Street",
		City:         city,
		State:        state,
		Country:      country,
		ContactPhone: hotel.ContactPhone,
		IsActive:     true,
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return err
	}
	if err := s.hotels.IncrementLocationCount(ctx, hotel.ID, 1); err != nil {
		return err
	}

	var errs []error
	for r := 0; r < s.cfg.RoomTypesPer; r++ {
		tmpl := roomTypeTemplates[r%len(roomTypeTemplates)]
		if err := s.seedRoomType(ctx, location, tmpl.name, tmpl.price, tmpl.inventory, tmpl.occupancy); err != nil {
			errs = append(errs, fmt.Errorf("seed room type %s: %w", tmpl.name, err))
		}
	}
	return multierr.Combine(errs...)
}

func (s *Seeder) seedRoomType(ctx context.Context, location *models.Location, name string, price int64, totalInventory, occupancy int) error {
	roomTypeSlug, err := slug.GenerateUnique(fmt.Sprintf("%s %s", location.Name, name), func(candidate string) (bool, error) {
		return s.roomTypes.SlugExists(ctx, candidate)
	})
	if err != nil {
		return err
	}
	roomType := &models.RoomType{
		LocationID:     location.ID,
		HotelID:        location.HotelID,
		Name:           name,
		Slug:           roomTypeSlug,
		BasePrice:      decimal.NewFromInt(price),
		TotalInventory: totalInventory,
		MaxOccupancy:   occupancy,
		DefaultMinStay: 1,
		MaxAdvanceDays: 365,
		IsActive:       true,
	}
	if err := s.roomTypes.Create(ctx, roomType); err != nil {
		return err
	}

	if s.cfg.InventoryDays > 0 {
		start := time.Now().UTC().Truncate(24 * time.Hour)
		end := start.AddDate(0, 0, s.cfg.InventoryDays)
		if err := s.inventory.EnsureRowsExist(ctx, roomType.ID, start, end, totalInventory); err != nil {
			return fmt.Errorf("materialize inventory: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedGuests(ctx context.Context) error {
	hash, err := security.HashPassword("wanderstay-dev", s.passwordCfg)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	var errs []error
	count := 0
	for i := 0; i < s.cfg.Guests; i++ {
		phone := fmt.Sprintf("+1555020%04d", i)
		email := fmt.Sprintf("guest%d@example.com", i)
		guest := &models.Guest{
			Name:        fmt.Sprintf("Guest %d", i+1),
			Email:       &email,
			PhoneNumber: phone,
			Password:    &hash,
			IsActive:    true,
		}
		if err := s.guests.Create(ctx, guest); err != nil {
			errs = append(errs, fmt.Errorf("seed guest %s: %w", phone, err))
			continue
		}
		count++
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"count": count})
	s.logg.Info(logCtx, "seeded guests")
	return multierr.Combine(errs...)
}
