package client

import (
	"context"
	"errors"

	"github.com/apratama/letter-seal/internal/adapter"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/tui"
)

// App ties the server adapter and the terminal UI into the signctl
// application lifecycle.
type App struct {
	server adapter.ServerAdapter
	tui    *tui.TUI
	logger *logger.Logger
}

func NewApp(server adapter.ServerAdapter, ui *tui.TUI, logger *logger.Logger) (*App, error) {
	return &App{server: server, tui: ui, logger: logger}, nil
}

// Run implements [Client]. It drives the login flow and the main loop;
// a logout from the main loop drops the session token and returns to the
// login screen.
func (a *App) Run() error {
	ctx := context.Background()

	user, err := a.tui.LoginFlow(ctx)
	if err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return err
	}

	a.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	logout, err := a.tui.MainLoop(ctx, user)
	if err != nil {
		return err
	}
	if logout {
		a.server.SetToken("")
		a.logger.Info().Str("user_id", user.ID).Msg("user logged out")
		return a.Run()
	}

	return nil
}
