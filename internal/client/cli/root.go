package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userEmail != "" {
		s = a.userEmail + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf(" (%s)", s)
	}
	return s
}

// restoreSession picks up the session saved by an earlier run.
func (a *App) restoreSession(ctx context.Context) {
	email, err := a.authService.RestoreSession(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to restore session", "error", err)
		return
	}
	if email != "" {
		a.setSession(email, true)
		a.printf("Welcome back, %s\n", email)
	}
}

// Root runs the interactive session until the user exits or ctx is done.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.printf("Welcome to GrowLog CLI (type 'help' for commands)\n")

	a.restoreSession(ctx)
	a.checkOnline(ctx)

	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
