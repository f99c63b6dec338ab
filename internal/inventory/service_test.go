package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
)

type stubRoomTypes struct {
	bySlug map[string]*models.RoomType
}

func (s *stubRoomTypes) GetBySlug(_ context.Context, slug string) (*models.RoomType, error) {
	if rt, ok := s.bySlug[slug]; ok {
		return rt, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room type not found")
}

func TestServiceCheckAvailability(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	roomType := &models.RoomType{ID: uuid.New(), Slug: "deluxe-king"}
	svc, err := NewService(repo, &stubRoomTypes{bySlug: map[string]*models.RoomType{"deluxe-king": roomType}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := repo.EnsureRowsExist(ctx, roomType.ID, date(2026, 3, 1), date(2026, 3, 3), 10); err != nil {
		t.Fatalf("ensure rows: %v", err)
	}

	result, err := svc.CheckAvailability(ctx, CheckAvailabilityInput{
		RoomTypeSlug: "deluxe-king",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 3),
		NumRooms:     4,
	})
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}
	if !result.Available || result.MinAvailable != 10 || result.NightCount != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestServiceCheckAvailabilityUnknownRoomType(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), &stubRoomTypes{bySlug: map[string]*models.RoomType{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.CheckAvailability(context.Background(), CheckAvailabilityInput{
		RoomTypeSlug: "missing",
		CheckIn:      date(2026, 3, 1),
		CheckOut:     date(2026, 3, 3),
		NumRooms:     1,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceCheckAvailabilityValidation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), &stubRoomTypes{bySlug: map[string]*models.RoomType{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.CheckAvailability(context.Background(), CheckAvailabilityInput{
		RoomTypeSlug: "deluxe-king",
		NumRooms:     0,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
