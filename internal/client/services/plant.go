package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/growlog/internal/api"
	"github.com/dmitrijs2005/growlog/internal/client/client"
	"github.com/dmitrijs2005/growlog/internal/filex"
	"github.com/dmitrijs2005/growlog/internal/lifecycle"
	"github.com/dmitrijs2005/growlog/internal/netx"
)

// Test seams for the presigned transfers.
var (
	uploadToPresignedURL     = netx.UploadToPresignedURL
	downloadFromPresignedURL = netx.DownloadFromPresignedURL
)

// PlantService is what the CLI can do with the user's plants.
type PlantService interface {
	List(ctx context.Context) ([]api.Plant, error)
	Get(ctx context.Context, id string) (*api.Plant, error)
	Create(ctx context.Context, in lifecycle.Input) (*api.Plant, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*api.SummaryResponse, error)
	UploadPhoto(ctx context.Context, id, path string) (*api.PhotoUploadResponse, error)
	DownloadPhoto(ctx context.Context, id string, w io.Writer) (int64, error)
}

type plantService struct {
	client client.Client
}

func NewPlantService(c client.Client) PlantService {
	return &plantService{client: c}
}

func (s *plantService) List(ctx context.Context) ([]api.Plant, error) {
	return s.client.ListPlants(ctx)
}

func (s *plantService) Get(ctx context.Context, id string) (*api.Plant, error) {
	return s.client.GetPlant(ctx, id)
}

// Create runs the same validation the server applies, so a form with a
// missing field never leaves the machine.
func (s *plantService) Create(ctx context.Context, in lifecycle.Input) (*api.Plant, error) {
	if _, err := lifecycle.Validate(in); err != nil {
		return nil, err
	}
	return s.client.CreatePlant(ctx, api.NewCreatePlantRequest(in))
}

func (s *plantService) Delete(ctx context.Context, id string) error {
	return s.client.DeletePlant(ctx, id)
}

func (s *plantService) Summary(ctx context.Context) (*api.SummaryResponse, error) {
	return s.client.Summary(ctx)
}

// UploadPhoto reads the image at path, asks the server for a presigned PUT
// URL and sends the file straight to object storage. When the transfer fails
// the reserved key is handed back so the plant keeps no dangling photo.
func (s *plantService) UploadPhoto(ctx context.Context, id, path string) (*api.PhotoUploadResponse, error) {
	data, contentType, err := filex.ReadPhoto(path)
	if err != nil {
		return nil, err
	}

	up, err := s.client.PhotoUploadURL(ctx, id, contentType)
	if err != nil {
		return nil, err
	}

	if err := uploadToPresignedURL(ctx, up.URL, contentType, data); err != nil {
		if cerr := s.client.CancelPhotoUpload(ctx, id, up.Key); cerr != nil {
			return nil, errors.Join(err, fmt.Errorf("error releasing photo key: %w", cerr))
		}
		return nil, err
	}
	return up, nil
}

// DownloadPhoto copies the plant photo into w.
func (s *plantService) DownloadPhoto(ctx context.Context, id string, w io.Writer) (int64, error) {
	url, err := s.client.PhotoURL(ctx, id)
	if err != nil {
		return 0, err
	}
	return downloadFromPresignedURL(ctx, url, w)
}

// SavePhoto downloads the plant photo into a new file at path.
func SavePhoto(ctx context.Context, s PlantService, id, path string) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return 0, err
	}

	n, err := s.DownloadPhoto(ctx, id, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("download photo: %w", err)
	}
	return n, nil
}
