// Package server initializes and runs the GrowLog API server. It opens the
// database, applies migrations, wires services into the HTTP surface,
// handles graceful shutdown and purges expired refresh tokens.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/growlog/internal/dbx"
	"github.com/dmitrijs2005/growlog/internal/logging"
	"github.com/dmitrijs2005/growlog/internal/server/config"
	"github.com/dmitrijs2005/growlog/internal/server/httpapi"
	"github.com/dmitrijs2005/growlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/growlog/internal/server/services"
)

// TokenPurgeInterval is how often expired refresh tokens are removed.
const TokenPurgeInterval = time.Hour

var (
	openDB               = dbx.Open
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.UserService
	plantService *services.PlantService
	seedService  *services.SeedService
}

// NewApp opens the database, applies migrations and builds the services.
// The returned App owns the database handle; Run closes it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(ctx, repomanager.DriverName, c.DatabaseDSN, dbx.PoolOptions{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	ps := services.NewPlantService(db, rm, services.NewPhotoStorage(c))
	ss := services.NewSeedService(db, rm, us, ps)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		userService:  us,
		plantService: ps,
		seedService:  ss,
	}, nil
}

// Seed loads the demo collection for email. See services.SeedService.
func (app *App) Seed(ctx context.Context, email string) (*services.SeedResult, error) {
	return app.seedService.Seed(ctx, email)
}

// Close releases the database handle.
func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.plantService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeTokens removes expired refresh tokens every interval until ctx is done.
func (app *App) purgeTokens(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := app.userService.PurgeExpiredTokens(ctx, now)
			if err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired refresh tokens purged", "count", n)
			}
		}
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// waits for the workers to stop and closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeTokens(ctx, TokenPurgeInterval)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
