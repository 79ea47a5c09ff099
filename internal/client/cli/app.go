package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/growlog/internal/client/client"
	"github.com/dmitrijs2005/growlog/internal/client/config"
	"github.com/dmitrijs2005/growlog/internal/client/services"
	"github.com/dmitrijs2005/growlog/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds each connectivity probe of the status watcher.
const pingTimeout = 3 * time.Second

type App struct {
	config       *config.Config
	db           *sql.DB
	logger       logging.Logger
	authService  services.AuthService
	plantService services.PlantService
	reader       *bufio.Reader
	out          io.Writer

	mu        sync.Mutex
	userEmail string
	loggedIn  bool
	Mode      Mode
}

// NewApp opens the local session store and builds the API services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr, c.LogLevel).With("module", "cli")

	db, err := client.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:       c,
		db:           db,
		logger:       logger,
		authService:  services.NewAuthService(apiClient, db, logger),
		plantService: services.NewPlantService(apiClient),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) setSession(email string, loggedIn bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userEmail = email
	a.loggedIn = loggedIn
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loggedIn
}

// Run restores a saved session, starts the connectivity watcher and blocks
// in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.authService.Close(ctx)
		_ = a.db.Close()
	}()
	a.Root(ctx)
}

// StartOnlineStatusWatcher pings the server every interval and flips Mode
// accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.logger.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
