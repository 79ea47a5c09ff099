package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/growlog/internal/api"
	"github.com/dmitrijs2005/growlog/internal/client/config"
	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/dmitrijs2005/growlog/internal/lifecycle"
	"github.com/dmitrijs2005/growlog/internal/logging"
)

type fakeAuth struct {
	regEmail, regName string
	regPass           []byte
	regErr            error

	loginEmail string
	loginPass  []byte
	loginErr   error

	restoreEmail string
	restoreErr   error

	logoutCalled bool
	logoutErr    error

	pingErr error
	closed  bool
}

func (f *fakeAuth) Register(_ context.Context, email, name string, pass []byte) (*api.User, error) {
	f.regEmail, f.regName, f.regPass = email, name, append([]byte(nil), pass...)
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &api.User{ID: "u1", Email: email, Name: name}, nil
}

func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) error {
	f.loginEmail, f.loginPass = email, append([]byte(nil), pass...)
	return f.loginErr
}

func (f *fakeAuth) RestoreSession(context.Context) (string, error) {
	return f.restoreEmail, f.restoreErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

func (f *fakeAuth) Close(context.Context) error {
	f.closed = true
	return nil
}

type fakePlants struct {
	plants     []api.Plant
	listErr    error
	created    *lifecycle.Input
	createErr  error
	deleted    []string
	deleteErr  error
	summary    *api.SummaryResponse
	uploadID   string
	uploadPath string
	uploadErr  error
	photo      []byte
}

func (f *fakePlants) List(context.Context) ([]api.Plant, error) { return f.plants, f.listErr }

func (f *fakePlants) Get(_ context.Context, id string) (*api.Plant, error) {
	for _, p := range f.plants {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Create validates like the real service so form errors surface the same way.
func (f *fakePlants) Create(_ context.Context, in lifecycle.Input) (*api.Plant, error) {
	if _, err := lifecycle.Validate(in); err != nil {
		return nil, err
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &in
	p, _ := lifecycle.ParsePhase(in.Phase)
	return &api.Plant{ID: "new-id", Name: in.Name, Phase: p, PhaseLabel: p.Label(), AgeDays: 3}, nil
}

func (f *fakePlants) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePlants) Summary(context.Context) (*api.SummaryResponse, error) {
	return f.summary, nil
}

func (f *fakePlants) UploadPhoto(_ context.Context, id, path string) (*api.PhotoUploadResponse, error) {
	f.uploadID, f.uploadPath = id, path
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &api.PhotoUploadResponse{Key: "plants/u1/" + id}, nil
}

func (f *fakePlants) DownloadPhoto(_ context.Context, id string, w io.Writer) (int64, error) {
	n, err := w.Write(f.photo)
	return int64(n), err
}

// newTestApp builds an App reading the given lines and writing into the
// returned buffer.
func newTestApp(t *testing.T, lines ...string) (*App, *bytes.Buffer, *fakeAuth, *fakePlants) {
	t.Helper()
	var out bytes.Buffer
	fa := &fakeAuth{}
	fp := &fakePlants{}
	input := ""
	if len(lines) > 0 {
		input = strings.Join(lines, "\n") + "\n"
	}
	a := &App{
		config:       &config.Config{},
		logger:       logging.Nop{},
		authService:  fa,
		plantService: fp,
		reader:       bufio.NewReader(strings.NewReader(input)),
		out:          &out,
	}
	return a, &out, fa, fp
}

func stubPassword(t *testing.T, pw []byte) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), pw...), nil }
	t.Cleanup(func() { getPassword = orig })
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
