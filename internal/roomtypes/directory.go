package roomtypes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wanderstay/wanderstay-backend/pkg/db/models"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
)

// Directory is the model-level lookup surface consumed by the availability
// and booking workflows. Unlike the repository it returns typed errors.
type Directory struct {
	repo *Repository
}

// NewDirectory wraps the repository for cross-package lookups.
func NewDirectory(repo *Repository) (*Directory, error) {
	if repo == nil {
		return nil, fmt.Errorf("room type repository required")
	}
	return &Directory{repo: repo}, nil
}

// GetBySlug loads a room type by slug.
func (d *Directory) GetBySlug(ctx context.Context, slug string) (*models.RoomType, error) {
	roomType, err := d.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room type")
	}
	return roomType, nil
}

// GetByID loads a room type by UUID.
func (d *Directory) GetByID(ctx context.Context, id uuid.UUID) (*models.RoomType, error) {
	roomType, err := d.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room type")
	}
	return roomType, nil
}
