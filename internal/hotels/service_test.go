package hotels

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/pagination"
)

func newHotelService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := "file:hotels_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Hotel{}))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func TestCreateHotelGeneratesSlug(t *testing.T) {
	svc, _ := newHotelService(t)

	hotel, err := svc.Create(context.Background(), CreateHotelInput{
		Name:         "Harbor View Suites",
		ContactPhone: "+15550001111",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^harbor-view-suites-[a-z0-9]+$`, hotel.Slug)
	assert.True(t, hotel.IsActive)
}

func TestCreateHotelSuffixesDuplicateSlug(t *testing.T) {
	svc, _ := newHotelService(t)

	first, err := svc.Create(context.Background(), CreateHotelInput{
		Name:         "Harbor View Suites",
		ContactPhone: "+15550001111",
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), CreateHotelInput{
		Name:         "Harbor View Suites",
		ContactPhone: "+15550002222",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "harbor-view-suites")
}

func TestGetHotelBySlugNotFound(t *testing.T) {
	svc, _ := newHotelService(t)

	_, err := svc.GetBySlug(context.Background(), "no-such-hotel")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListHotelsPaginates(t *testing.T) {
	svc, _ := newHotelService(t)

	names := []string{"Alpha Lodge", "Beta Lodge", "Gamma Lodge"}
	for _, name := range names {
		_, err := svc.Create(context.Background(), CreateHotelInput{
			Name:         name,
			ContactPhone: "+15550001111",
		})
		require.NoError(t, err)
	}

	page, total, err := svc.List(context.Background(), pagination.Params{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)
}

func TestUpdateHotelMutatesOnlyProvidedFields(t *testing.T) {
	svc, _ := newHotelService(t)

	created, err := svc.Create(context.Background(), CreateHotelInput{
		Name:         "Seaside Inn",
		ContactPhone: "+15550001111",
	})
	require.NoError(t, err)

	newPhone := "+15550009999"
	updated, err := svc.Update(context.Background(), created.Slug, UpdateHotelInput{
		ContactPhone: &newPhone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Seaside Inn", updated.Name)
	assert.Equal(t, newPhone, updated.ContactPhone)
	assert.Equal(t, created.Slug, updated.Slug)
}

func TestSoftDeleteHidesHotel(t *testing.T) {
	svc, conn := newHotelService(t)

	created, err := svc.Create(context.Background(), CreateHotelInput{
		Name:         "Vanishing Hotel",
		ContactPhone: "+15550001111",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(context.Background(), created.Slug))

	_, err = svc.GetBySlug(context.Background(), created.Slug)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// The row survives for auditing; repository queries filter on deleted_at.
	var count int64
	require.NoError(t, conn.Model(&models.Hotel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
