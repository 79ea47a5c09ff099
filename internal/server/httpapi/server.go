// Package httpapi exposes the GrowLog services over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/growlog/internal/api"
	"github.com/dmitrijs2005/growlog/internal/lifecycle"
	"github.com/dmitrijs2005/growlog/internal/logging"
	"github.com/dmitrijs2005/growlog/internal/server/models"
	"github.com/dmitrijs2005/growlog/internal/server/services"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

type userSvc interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type plantSvc interface {
	Create(ctx context.Context, ownerID string, in lifecycle.Input) (*models.Plant, error)
	Get(ctx context.Context, ownerID, id string) (*models.Plant, error)
	List(ctx context.Context, ownerID string) ([]*models.Plant, error)
	Delete(ctx context.Context, ownerID, id string) error
	Summary(ctx context.Context, ownerID string) ([]lifecycle.PhaseCount, error)
	PhotoUploadURL(ctx context.Context, ownerID, id, contentType string) (*services.PhotoUpload, error)
	PhotoDownloadURL(ctx context.Context, ownerID, id string) (string, error)
	CancelPhotoUpload(ctx context.Context, ownerID, id, key string) error
}

type HTTPServer struct {
	address   string
	users     userSvc
	plants    plantSvc
	logger    logging.Logger
	jwtSecret []byte
	now       func() time.Time
}

func NewHTTPServer(a string, l logging.Logger, us userSvc, ps plantSvc, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		plants:    ps,
		jwtSecret: []byte(secretKey),
		now:       time.Now,
	}
}

// Handler builds the routing tree. Plant routes require a bearer token.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+api.PathPing, s.ping)
	mux.HandleFunc("POST "+api.PathRegister, s.register)
	mux.HandleFunc("POST "+api.PathLogin, s.login)
	mux.HandleFunc("POST "+api.PathRefresh, s.refresh)
	mux.HandleFunc("POST "+api.PathLogout, s.logout)

	mux.Handle("GET "+api.PathMe, s.authenticated(s.me))
	mux.Handle("GET "+api.PathPlants, s.authenticated(s.listPlants))
	mux.Handle("POST "+api.PathPlants, s.authenticated(s.createPlant))
	mux.Handle("GET "+api.PathSummary, s.authenticated(s.summary))
	mux.Handle("GET "+api.PathForm, s.authenticated(s.form))
	mux.Handle("GET "+api.PathPlants+"/{id}", s.authenticated(s.getPlant))
	mux.Handle("DELETE "+api.PathPlants+"/{id}", s.authenticated(s.deletePlant))
	mux.Handle("POST "+api.PathPlants+"/{id}/photo", s.authenticated(s.uploadPhoto))
	mux.Handle("GET "+api.PathPlants+"/{id}/photo", s.authenticated(s.downloadPhoto))
	mux.Handle("DELETE "+api.PathPlants+"/{id}/photo", s.authenticated(s.cancelPhoto))

	return s.recoverer(s.requestLogger(mux))
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}
