// Package services contains application services for the GrowLog CLI.
// This file defines the authentication service: register, login, logout,
// liveness probe and persistence of the session in the local store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/growlog/internal/api"
	"github.com/dmitrijs2005/growlog/internal/client/client"
	"github.com/dmitrijs2005/growlog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/dmitrijs2005/growlog/internal/dbx"
	"github.com/dmitrijs2005/growlog/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new account on the server.
//   - Login: authenticate and persist the session locally.
//   - RestoreSession: reload a saved session; reports the email it belongs to.
//   - Logout: revoke the session on the server and forget it locally.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Register(ctx context.Context, email, name string, password []byte) (*api.User, error)
	Login(ctx context.Context, email string, password []byte) error
	RestoreSession(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// local DB. Every token pair the client obtains from now on, including
// transparent refreshes, is written to the metadata store.
func NewAuthService(c client.Client, db *sql.DB, logger logging.Logger) AuthService {
	a := &authService{client: c, db: db, logger: logger.With("module", "auth_service")}
	c.OnTokens(a.saveTokens)
	return a
}

func (a *authService) saveTokens(ctx context.Context, tokens api.TokenResponse) {
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyAccessToken, tokens.AccessToken); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyRefreshToken, tokens.RefreshToken)
	})
	if err != nil {
		a.logger.Error(ctx, "failed to save session tokens", "error", err)
	}
}

func (a *authService) Register(ctx context.Context, email, name string, password []byte) (*api.User, error) {
	req := api.RegisterRequest{
		Email:    strings.TrimSpace(email),
		Name:     strings.TrimSpace(name),
		Password: string(password),
	}
	return a.client.Register(ctx, req)
}

// Login authenticates against the server. The tokens are persisted by the
// OnTokens hook; the email is stored alongside them.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)

	if _, err := a.client.Login(ctx, email, string(password)); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := metadata.NewSQLiteRepository(a.db).Set(ctx, metadata.KeyEmail, email); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

// RestoreSession loads saved tokens into the client. An empty email with a
// nil error means there is no saved session.
func (a *authService) RestoreSession(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(a.db)

	values := make(map[string]string, 3)
	for _, key := range []string{metadata.KeyAccessToken, metadata.KeyRefreshToken, metadata.KeyEmail} {
		v, err := repo.Get(ctx, key)
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		values[key] = v
	}

	a.client.SetTokens(api.TokenResponse{
		AccessToken:  values[metadata.KeyAccessToken],
		RefreshToken: values[metadata.KeyRefreshToken],
	})
	return values[metadata.KeyEmail], nil
}

// Logout always forgets the local session. A server that cannot be reached
// is not an error; the refresh token then simply expires on its own.
func (a *authService) Logout(ctx context.Context) error {
	serverErr := a.client.Logout(ctx)

	repo := metadata.NewSQLiteRepository(a.db)
	if err := repo.Delete(ctx, metadata.KeyAccessToken, metadata.KeyRefreshToken, metadata.KeyEmail); err != nil {
		return err
	}

	if serverErr != nil && !errors.Is(serverErr, client.ErrUnavailable) {
		return serverErr
	}
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
