package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/apratama/letter-seal/internal/adapter"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/models"
)

// ErrUserQuit is returned when the user exits the program before
// completing the login flow.
var ErrUserQuit = errors.New("quit by user")

type TUI struct {
	server adapter.ServerAdapter
}

func New(server adapter.ServerAdapter, _ *logger.Logger) (*TUI, error) {
	return &TUI{server: server}, nil
}

// LoginFlow runs the interactive login screen and blocks until the user
// authenticates or quits.
func (t *TUI) LoginFlow(ctx context.Context) (models.User, error) {
	pages := map[string]tea.Model{
		"login": NewLoginModel(ctx, t.server),
	}

	root := NewRootModel(pages, "login")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.User{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.User{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.User{}, ErrUserQuit
	}

	return result.resultUser, nil
}

// MainLoop runs the letter console for an authenticated user. It reports
// whether the user asked to log out (as opposed to quitting outright).
func (t *TUI) MainLoop(ctx context.Context, user models.User) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.server, user)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
