package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apratama/letter-seal/internal/adapter"
	"github.com/apratama/letter-seal/models"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two
// text inputs (email and secret key) and dispatches an async login command
// on form submission. On success a [LoginResult] message is produced and
// handled by [RootModel] to finish the authentication flow.
type LoginModel struct {
	ctx    context.Context
	server adapter.ServerAdapter

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with pre-configured email and secret
// key inputs. The email field receives focus immediately; the secret key
// field uses masked echo.
func NewLoginModel(ctx context.Context, server adapter.ServerAdapter) *LoginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	keyInput := textinput.New()
	keyInput.Placeholder = "SK-XXXXXXXX-XXXXXXXXXXXXXXXX"
	keyInput.CharLimit = 64
	keyInput.Width = 40
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '*'

	return &LoginModel{
		ctx:    ctx,
		server: server,
		inputs: []textinput.Model{emailInput, keyInput},
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the
// active input.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [LoginResult]  — clears submitting state; on error, populates errMsg.
//   - tab            — moves focus to the next input.
//   - shift+tab      — moves focus to the previous input.
//   - enter          — validates inputs and dispatches the async login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeServerUnavailableError(result.Err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			email := strings.TrimSpace(m.inputs[0].Value())
			secretKey := strings.TrimSpace(m.inputs[1].Value())
			if email == "" || secretKey == "" {
				m.errMsg = "email and secret key are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(email, secretKey)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model]. Renders the login form as a two-column table
// with email and secret key inputs, a submission indicator, and an optional
// error message.
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Field      │ Value\n")
	b.WriteString("───────────┼────────────────────────────────────────────\n")
	b.WriteString("Email      │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Secret key │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Signing in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(email, secretKey string) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		result, err := server.Login(ctx, models.LoginRequest{
			Email:     email,
			SecretKey: secretKey,
		})

		return LoginResult{
			Err:  err,
			User: result.User,
		}
	}
}

func (m *LoginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
