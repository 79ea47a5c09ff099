package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/dmitrijs2005/growlog/internal/lifecycle"
	"github.com/dmitrijs2005/growlog/internal/logging"
	"github.com/dmitrijs2005/growlog/internal/server/auth"
	"github.com/dmitrijs2005/growlog/internal/server/models"
	"github.com/dmitrijs2005/growlog/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "k"

var fixedNow = time.Date(2025, 1, 18, 12, 0, 0, 0, time.UTC)

// ---- fakes ----

type fakeUsers struct {
	regResp *models.User
	regErr  error

	loginResp *services.TokenPair
	loginErr  error

	refreshResp *services.TokenPair
	refreshErr  error

	logoutErr   error
	loggedOut   []string
	user        *models.User
	userErr     error
	gotUserID   string
	gotEmail    string
	gotPassword string
}

func (f *fakeUsers) Register(_ context.Context, email, name, password string) (*models.User, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.regResp, f.regErr
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*services.TokenPair, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.loginResp, f.loginErr
}

func (f *fakeUsers) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeUsers) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return f.logoutErr
}

func (f *fakeUsers) GetUser(_ context.Context, userID string) (*models.User, error) {
	f.gotUserID = userID
	return f.user, f.userErr
}

type fakePlants struct {
	plants    map[string]*models.Plant
	err       error
	gotOwner  string
	gotInput  lifecycle.Input
	gotCT     string
	upload    *services.PhotoUpload
	photoURL  string
	nextID    int
	panicking bool
}

func newFakePlants() *fakePlants {
	return &fakePlants{plants: map[string]*models.Plant{}}
}

func (f *fakePlants) Create(_ context.Context, ownerID string, in lifecycle.Input) (*models.Plant, error) {
	f.gotOwner, f.gotInput = ownerID, in
	rec, err := lifecycle.Validate(in)
	if err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	p := models.NewPlant(ownerID, rec)
	p.ID = fmt.Sprintf("p%d", f.nextID)
	p.CreatedAt, p.UpdatedAt = fixedNow, fixedNow
	f.plants[p.ID] = p
	return p, nil
}

func (f *fakePlants) Get(_ context.Context, ownerID, id string) (*models.Plant, error) {
	if f.panicking {
		panic("kaboom")
	}
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.plants[id]
	if !ok || p.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakePlants) List(_ context.Context, ownerID string) ([]*models.Plant, error) {
	f.gotOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Plant{}
	for _, p := range f.plants {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlants) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := f.Get(ctx, ownerID, id); err != nil {
		return err
	}
	delete(f.plants, id)
	return nil
}

func (f *fakePlants) Summary(ctx context.Context, ownerID string) ([]lifecycle.PhaseCount, error) {
	ps, err := f.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	phases := make([]lifecycle.Phase, 0, len(ps))
	for _, p := range ps {
		phases = append(phases, p.Phase)
	}
	return lifecycle.Summarize(phases), nil
}

func (f *fakePlants) PhotoUploadURL(ctx context.Context, ownerID, id, contentType string) (*services.PhotoUpload, error) {
	if _, err := f.Get(ctx, ownerID, id); err != nil {
		return nil, err
	}
	f.gotCT = contentType
	return f.upload, nil
}

func (f *fakePlants) CancelPhotoUpload(ctx context.Context, ownerID, id, key string) error {
	p, err := f.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if p.PhotoKey != nil && *p.PhotoKey == key {
		p.PhotoKey = nil
	}
	return nil
}

func (f *fakePlants) PhotoDownloadURL(ctx context.Context, ownerID, id string) (string, error) {
	p, err := f.Get(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if p.PhotoKey == nil {
		return "", common.ErrorNotFound
	}
	return f.photoURL, nil
}

// ---- helpers ----

func newTestServer(u *fakeUsers, p *fakePlants) *HTTPServer {
	s := NewHTTPServer("127.0.0.1:0", logging.Nop{}, u, p, testSecret)
	s.now = func() time.Time { return fixedNow }
	return s
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return common.BearerPrefix + tok
}

func do(t *testing.T, h http.Handler, method, path, body, authz string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set(common.AuthorizationHeaderName, authz)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
