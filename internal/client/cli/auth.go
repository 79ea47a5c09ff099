package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/growlog/internal/client/client"
	"github.com/dmitrijs2005/growlog/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// report prints a user-facing message for err and returns err unchanged.
// An expired session also drops the local logged-in state.
func (a *App) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, client.ErrNotLoggedIn):
		a.printf("Please log in first\n")
	case errors.Is(err, client.ErrUnauthorized):
		a.setSession("", false)
		a.printf("Session expired, please log in again\n")
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		a.printf("Server unavailable, try again later\n")
	case errors.Is(err, common.ErrorNotFound):
		a.printf("Plant not found\n")
	default:
		a.printf("Error: %s\n", err.Error())
	}
	return err
}

// Register prompts for email, name and password and creates an account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Register(ctx, email, name, password)
	if err != nil {
		return a.report(err)
	}

	a.printf("Success! Account %s created, you can log in now\n", user.Email)
	return nil
}

// Login prompts for credentials and opens a session. Wrong credentials
// are reported without changing the current session state.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.printf("Login unsuccessful: invalid email or password\n")
			return err
		}
		return a.report(err)
	}

	a.setSession(email, true)
	a.setMode(ModeOnline)
	a.printf("Login successful\n")
	return nil
}

// Logout ends the session on the server (when reachable) and locally.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.authService.Logout(ctx)
	a.setSession("", false)
	if err != nil {
		return a.report(err)
	}
	a.printf("Logged out\n")
	return nil
}
