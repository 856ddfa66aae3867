package tui

import (
	"github.com/apratama/letter-seal/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the root router to another page. Payload, when set,
// is re-delivered to the target page as its first message.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult is produced by the async login command and consumed both by
// the login page (to show errors) and the root router (to finish the flow).
type LoginResult struct {
	Err  error
	User models.User
}

type lettersLoadedMsg struct {
	letters []models.Letter
	err     error
}

type signDoneMsg struct {
	letter    models.Letter
	signature models.Signature
	err       error
}

type verifyDoneMsg struct {
	result models.VerificationResult
	err    error
}

type qrSavedMsg struct {
	path string
	err  error
}
