package client

import (
	"context"

	"github.com/dmitrijs2005/growlog/internal/api"
)

// Client is the GrowLog server API as seen by the CLI services.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, error)
	Login(ctx context.Context, email, password string) (api.TokenResponse, error)
	Logout(ctx context.Context) error

	ListPlants(ctx context.Context) ([]api.Plant, error)
	GetPlant(ctx context.Context, id string) (*api.Plant, error)
	CreatePlant(ctx context.Context, req api.CreatePlantRequest) (*api.Plant, error)
	DeletePlant(ctx context.Context, id string) error
	Summary(ctx context.Context) (*api.SummaryResponse, error)
	PhotoUploadURL(ctx context.Context, id, contentType string) (*api.PhotoUploadResponse, error)
	// CancelPhotoUpload hands back an upload key whose upload failed.
	CancelPhotoUpload(ctx context.Context, id, key string) error
	PhotoURL(ctx context.Context, id string) (string, error)

	// SetTokens installs a previously saved session.
	SetTokens(tokens api.TokenResponse)
	// OnTokens registers a callback invoked whenever the client obtains a
	// new token pair, either from Login or from a transparent refresh.
	OnTokens(fn func(ctx context.Context, tokens api.TokenResponse))
	Close() error
}
