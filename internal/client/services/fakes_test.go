package services

import (
	"context"

	"github.com/dmitrijs2005/growlog/internal/api"
	"github.com/dmitrijs2005/growlog/internal/common"
)

// fakeClient implements client.Client for unit tests. Login hands out the
// pair a1/r1 and reports it through the OnTokens hook like the real client.
type fakeClient struct {
	onTokens func(ctx context.Context, tokens api.TokenResponse)
	tokens   api.TokenResponse

	registerErr error
	loginErr    error
	logoutErr   error
	pingErr     error
	closed      bool
	loggedOut   bool

	lastRegister api.RegisterRequest
	lastCreate   api.CreatePlantRequest
	createCalls  int
	deleted      []string

	plants      map[string]api.Plant
	uploadURL   string
	photoURL    string
	lastCT      string
	photoErr    error
	cancelErr   error
	cancelled   []string
	summaryResp *api.SummaryResponse
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	f.lastRegister = req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &api.User{ID: "u1", Email: req.Email, Name: req.Name}, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (api.TokenResponse, error) {
	if f.loginErr != nil {
		return api.TokenResponse{}, f.loginErr
	}
	t := api.TokenResponse{AccessToken: "a1", RefreshToken: "r1"}
	f.tokens = t
	if f.onTokens != nil {
		f.onTokens(ctx, t)
	}
	return t, nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.loggedOut = true
	f.tokens = api.TokenResponse{}
	return f.logoutErr
}

func (f *fakeClient) ListPlants(ctx context.Context) ([]api.Plant, error) {
	out := make([]api.Plant, 0, len(f.plants))
	for _, p := range f.plants {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeClient) GetPlant(ctx context.Context, id string) (*api.Plant, error) {
	p, ok := f.plants[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (f *fakeClient) CreatePlant(ctx context.Context, req api.CreatePlantRequest) (*api.Plant, error) {
	f.createCalls++
	f.lastCreate = req
	return &api.Plant{ID: "new", Name: req.Name}, nil
}

func (f *fakeClient) DeletePlant(ctx context.Context, id string) error {
	if _, ok := f.plants[id]; !ok {
		return common.ErrorNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClient) Summary(ctx context.Context) (*api.SummaryResponse, error) {
	return f.summaryResp, nil
}

func (f *fakeClient) PhotoUploadURL(ctx context.Context, id, contentType string) (*api.PhotoUploadResponse, error) {
	if f.photoErr != nil {
		return nil, f.photoErr
	}
	f.lastCT = contentType
	return &api.PhotoUploadResponse{URL: f.uploadURL, Key: "plants/u1/" + id}, nil
}

func (f *fakeClient) CancelPhotoUpload(ctx context.Context, id, key string) error {
	f.cancelled = append(f.cancelled, key)
	return f.cancelErr
}

func (f *fakeClient) PhotoURL(ctx context.Context, id string) (string, error) {
	if f.photoErr != nil {
		return "", f.photoErr
	}
	return f.photoURL, nil
}

func (f *fakeClient) SetTokens(tokens api.TokenResponse) { f.tokens = tokens }

func (f *fakeClient) OnTokens(fn func(ctx context.Context, tokens api.TokenResponse)) {
	f.onTokens = fn
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}
