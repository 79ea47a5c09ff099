// Package plants provides the PostgreSQL-backed plant repository.
package plants

import (
	"context"

	"github.com/dmitrijs2005/growlog/internal/server/models"
)

// Repository is the persistence boundary for plant records.
type Repository interface {
	// Create inserts plant and fills ID, CreatedAt and UpdatedAt.
	// No deduplication: identical plants get distinct IDs.
	Create(ctx context.Context, plant *models.Plant) (*models.Plant, error)

	// FindByID returns the plant with the given id when ownerID owns it.
	// A missing row yields common.ErrorNotFound, a row owned by someone
	// else yields common.ErrorForbidden.
	FindByID(ctx context.Context, id, ownerID string) (*models.Plant, error)

	// FindAllByOwner lists the owner's plants, newest first.
	FindAllByOwner(ctx context.Context, ownerID string) ([]*models.Plant, error)

	// DeleteByID removes a plant permanently. common.ErrorNotFound when no row matched.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAllByOwner removes every plant of ownerID and reports how many went.
	DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error)

	// SetPhotoKey records the object-storage key of the plant photo.
	SetPhotoKey(ctx context.Context, id, ownerID, key string) error

	// ClearPhotoKey forgets the photo key of the plant, but only while it is
	// still key. A newer photo is left alone; either way no error.
	ClearPhotoKey(ctx context.Context, id, ownerID, key string) error
}
