package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/dmitrijs2005/growlog/internal/dbx"
	"github.com/dmitrijs2005/growlog/internal/lifecycle"
	"github.com/dmitrijs2005/growlog/internal/server/models"
	"github.com/dmitrijs2005/growlog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Photos is what PlantService needs from the object store.
type Photos interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// PhotoUpload is a one-shot permission to upload a plant photo.
type PhotoUpload struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}

// PlantService manages plant records on behalf of their owner. Every
// operation is scoped by ownerID: a plant owned by someone else behaves
// exactly like a plant that does not exist.
type PlantService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	photos      Photos
	now         func() time.Time
}

func NewPlantService(db *sql.DB, m repomanager.RepositoryManager, photos Photos) *PlantService {
	return &PlantService{
		db:          db,
		repomanager: m,
		photos:      photos,
		now:         time.Now,
	}
}

// Create validates in and stores it as a new plant of ownerID. Validation
// failures are returned as is (*lifecycle.MissingFieldError or
// *lifecycle.InvalidDateError); nothing is written in that case.
func (s *PlantService) Create(ctx context.Context, ownerID string, in lifecycle.Input) (*models.Plant, error) {
	rec, err := lifecycle.Validate(in)
	if err != nil {
		return nil, err
	}

	plant, err := s.repomanager.Plants(s.db).Create(ctx, models.NewPlant(ownerID, rec))
	if err != nil {
		return nil, fmt.Errorf("error creating plant: %w", err)
	}
	return plant, nil
}

// Get returns one plant of ownerID.
func (s *PlantService) Get(ctx context.Context, ownerID, id string) (*models.Plant, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	plant, err := s.repomanager.Plants(s.db).FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, hideForeign(err)
	}
	return plant, nil
}

// List returns the plants of ownerID, newest first.
func (s *PlantService) List(ctx context.Context, ownerID string) ([]*models.Plant, error) {
	plants, err := s.repomanager.Plants(s.db).FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing plants: %w", err)
	}
	return plants, nil
}

// Delete permanently removes a plant of ownerID. The ownership check and
// the delete run in one transaction.
func (s *PlantService) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Plants(tx)
		if _, err := repo.FindByID(ctx, id, ownerID); err != nil {
			return hideForeign(err)
		}
		if err := repo.DeleteByID(ctx, id); err != nil {
			return hideForeign(err)
		}
		return nil
	})
}

// Summary counts the plants of ownerID per phase.
func (s *PlantService) Summary(ctx context.Context, ownerID string) ([]lifecycle.PhaseCount, error) {
	plants, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	phases := make([]lifecycle.Phase, 0, len(plants))
	for _, p := range plants {
		phases = append(phases, p.Phase)
	}
	return lifecycle.Summarize(phases), nil
}

// PhotoUploadURL reserves a new photo key for the plant and returns a
// presigned PUT URL for it. The key replaces any previous photo as soon as
// it is issued; a client whose upload fails hands it back through
// CancelPhotoUpload.
func (s *PlantService) PhotoUploadURL(ctx context.Context, ownerID, id, contentType string) (*PhotoUpload, error) {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return nil, err
	}

	now := s.now()
	key := PhotoKey(ownerID, now)

	url, err := s.photos.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	if err := s.repomanager.Plants(s.db).SetPhotoKey(ctx, id, ownerID, key); err != nil {
		return nil, hideForeign(err)
	}

	return &PhotoUpload{URL: url, Key: key, ExpiresAt: now.Add(PresignExpiry)}, nil
}

// CancelPhotoUpload releases a key handed out by PhotoUploadURL whose upload
// never completed, so the plant stops pointing at a missing object. A key
// that has since been replaced is ignored.
func (s *PlantService) CancelPhotoUpload(ctx context.Context, ownerID, id, key string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repomanager.Plants(s.db).ClearPhotoKey(ctx, id, ownerID, key); err != nil {
		return hideForeign(err)
	}
	return nil
}

// PhotoDownloadURL returns a presigned GET URL for the plant photo.
// common.ErrorNotFound when the plant has no photo.
func (s *PlantService) PhotoDownloadURL(ctx context.Context, ownerID, id string) (string, error) {
	plant, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if plant.PhotoKey == nil {
		return "", common.ErrorNotFound
	}

	url, err := s.photos.PresignGet(ctx, *plant.PhotoKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}
	return url, nil
}

// validID reports whether id can name a plant at all. Plant ids are UUIDs
// assigned by the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// hideForeign folds "owned by someone else" into "not found".
func hideForeign(err error) error {
	if errors.Is(err, common.ErrorForbidden) || errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return err
}
