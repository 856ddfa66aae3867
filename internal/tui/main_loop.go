package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apratama/letter-seal/internal/adapter"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/models"
)

type mainLoopModel struct {
	ctx    context.Context
	server adapter.ServerAdapter
	user   models.User

	letters []models.Letter
	idx     int
	filter  models.LetterStatus
	loading bool
	spinner spinner.Model
	status  string
	errMsg  string
	detail  bool

	signing        bool
	signInput      textinput.Model
	signSubmitting bool

	logout bool
}

func newMainLoopModel(ctx context.Context, server adapter.ServerAdapter, user models.User) mainLoopModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return mainLoopModel{
		ctx:     ctx,
		server:  server,
		user:    user,
		spinner: s,
		loading: true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadLetters(), m.spinner.Tick)
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case lettersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.letters = msg.letters
		if m.idx >= len(m.letters) {
			m.idx = len(m.letters) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case signDoneMsg:
		m.signSubmitting = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("seal failed: %v", humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.signing = false
		m.status = fmt.Sprintf("Letter %s sealed, signature %s", msg.letter.LetterNumber, msg.signature.ID)
		m.errMsg = ""
		m.loading = true
		return m, tea.Batch(m.cmdLoadLetters(), m.spinner.Tick)
	case verifyDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("verification failed: %v", humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.errMsg = ""
		if msg.result.IsValid {
			m.status = fmt.Sprintf("Verified: %s is VALID", msg.result.Type)
		} else {
			m.status = fmt.Sprintf("Verified: %s is NOT valid", msg.result.Type)
		}
		return m, nil
	case qrSavedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("QR save failed: %v", humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.errMsg = ""
		m.status = "QR code saved to " + msg.path
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.signing {
			return m.updateSigning(msg)
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.signing {
		return m.updateSigning(msg)
	}

	if m.detail {
		letter, ok := m.current()
		if !ok {
			m.detail = false
			return m, nil
		}

		switch keyMsg.String() {
		case "esc":
			m.detail = false
		case "s":
			if letter.Status == models.StatusDraft {
				m.startSigning()
			} else {
				m.status = "Only draft letters can be sealed"
			}
		case "c":
			if letter.QRPayload == "" {
				m.status = "Nothing to copy: letter is not sealed"
				return m, nil
			}
			if err := clipboard.WriteAll(letter.QRPayload); err != nil {
				m.errMsg = fmt.Sprintf("copy failed: %v", err)
				return m, nil
			}
			m.status = "Verification link copied"
		case "w":
			if letter.Status != models.StatusSigned {
				m.status = "QR code is available for sealed letters only"
				return m, nil
			}
			return m, m.cmdSaveQR(letter)
		case "v":
			m.status = "Verifying..."
			return m, m.cmdVerify(letter.ID)
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.letters)-1 {
			m.idx++
		}
	case "enter":
		if _, ok := m.current(); !ok {
			m.status = "No letters"
			return m, nil
		}
		m.detail = true
	case "s":
		letter, ok := m.current()
		if !ok {
			m.status = "No letters"
			return m, nil
		}
		if letter.Status != models.StatusDraft {
			m.status = "Only draft letters can be sealed"
			return m, nil
		}
		m.startSigning()
		return m, nil
	case "v":
		letter, ok := m.current()
		if !ok {
			m.status = "No letters"
			return m, nil
		}
		m.status = "Verifying..."
		return m, m.cmdVerify(letter.ID)
	case "f":
		m.filter = nextFilter(m.filter)
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.cmdLoadLetters(), m.spinner.Tick)
	case "r":
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.cmdLoadLetters(), m.spinner.Tick)
	case "l":
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m mainLoopModel) updateSigning(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.signing = false
			m.signSubmitting = false
			m.errMsg = ""
			return m, nil
		case "enter":
			if m.signSubmitting {
				return m, nil
			}

			letter, ok := m.current()
			if !ok {
				m.signing = false
				return m, nil
			}

			secretKey := strings.TrimSpace(m.signInput.Value())
			if secretKey == "" {
				m.errMsg = "secret key is required"
				return m, nil
			}

			m.errMsg = ""
			m.signSubmitting = true
			return m, m.cmdSign(letter.ID, secretKey)
		}
	}

	var cmd tea.Cmd
	m.signInput, cmd = m.signInput.Update(msg)
	return m, cmd
}

func (m mainLoopModel) View() string {
	if m.signing {
		return m.viewSigning()
	}
	if m.detail {
		if letter, ok := m.current(); ok {
			title, body, hotKeys := m.viewDetail(letter)
			return renderPage(title, body, hotKeys)
		}
	}
	return m.viewList()
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading letters...\n")
	} else if len(m.letters) == 0 {
		b.WriteString("No letters")
		if m.filter != "" {
			b.WriteString(" with status " + string(m.filter))
		}
		b.WriteString("\n")
	} else {
		for i, letter := range m.letters {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s %-24s %s\n",
				cursor, statusIcon(letter.Status), fitText(letter.LetterNumber, 24), fitText(letter.Subject, 40)))
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	title := "LETTERS"
	if m.filter != "" {
		title += " (" + strings.ToUpper(string(m.filter)) + ")"
	}
	title += " — " + m.user.Name

	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"enter: open │ s: seal │ v: verify │ f: filter │ r: reload │ l: logout │ q: quit")
}

func (m mainLoopModel) viewDetail(letter models.Letter) (title, body, hotKeys string) {
	var b strings.Builder

	title = "LETTER: " + letter.LetterNumber

	b.WriteString("Number     : " + letter.LetterNumber + "\n")
	b.WriteString("Date       : " + letter.LetterDate.Format("2006-01-02") + "\n")
	b.WriteString("Subject    : " + valueOrDash(letter.Subject) + "\n")
	b.WriteString("Attachment : " + valueOrDash(letter.Attachment) + "\n")
	b.WriteString("Status     : " + string(letter.Status) + "\n")
	b.WriteString("Created    : " + letter.CreatedAt.Format("2006-01-02 15:04") + "\n")

	if letter.Status == models.StatusSigned {
		b.WriteString("\n[ SEAL ]\n")
		b.WriteString("Hash       : " + fitText(letter.ContentHash, 48) + "\n")
		b.WriteString("Verify URL : " + letter.QRPayload + "\n")
		hotKeys = "c: copy link │ w: save QR │ v: verify │ esc: back"
	} else {
		hotKeys = "s: seal │ v: verify │ esc: back"
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return title, strings.TrimRight(b.String(), "\n"), hotKeys
}

func (m mainLoopModel) viewSigning() string {
	letter, _ := m.current()

	var b strings.Builder
	b.WriteString("Sealing letter " + letter.LetterNumber + "\n\n")
	b.WriteString("Secret key │ [")
	b.WriteString(m.signInput.View())
	b.WriteString("]\n")

	if m.signSubmitting {
		b.WriteString("\n[Sealing...]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SEAL LETTER", strings.TrimRight(b.String(), "\n"), "enter: seal │ esc: cancel")
}

func (m mainLoopModel) current() (models.Letter, bool) {
	if len(m.letters) == 0 || m.idx < 0 || m.idx >= len(m.letters) {
		return models.Letter{}, false
	}
	return m.letters[m.idx], true
}

func (m *mainLoopModel) startSigning() {
	input := textinput.New()
	input.Placeholder = "SK-XXXXXXXX-XXXXXXXXXXXXXXXX"
	input.CharLimit = 64
	input.Width = 40
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()

	m.signInput = input
	m.signing = true
	m.signSubmitting = false
	m.errMsg = ""
}

func (m mainLoopModel) cmdLoadLetters() tea.Cmd {
	ctx := m.ctx
	server := m.server
	filter := store.LetterFilter{Status: m.filter}

	return func() tea.Msg {
		letters, err := server.ListLetters(ctx, filter)
		return lettersLoadedMsg{letters: letters, err: err}
	}
}

func (m mainLoopModel) cmdSign(letterID, secretKey string) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		letter, signature, err := server.SignLetter(ctx, letterID, secretKey)
		return signDoneMsg{letter: letter, signature: signature, err: err}
	}
}

func (m mainLoopModel) cmdVerify(letterID string) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		result, err := server.Verify(ctx, letterID)
		return verifyDoneMsg{result: result, err: err}
	}
}

func (m mainLoopModel) cmdSaveQR(letter models.Letter) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		png, err := server.LetterQR(ctx, letter.ID)
		if err != nil {
			return qrSavedMsg{err: err}
		}

		path := qrFileName(letter)
		if err = os.WriteFile(path, png, 0o644); err != nil {
			return qrSavedMsg{err: err}
		}
		return qrSavedMsg{path: path}
	}
}

func qrFileName(letter models.Letter) string {
	id := letter.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "letter-" + id + ".png"
}

func statusIcon(s models.LetterStatus) string {
	switch s {
	case models.StatusDraft:
		return "[D]"
	case models.StatusSigned:
		return "[S]"
	case models.StatusInvalid:
		return "[!]"
	default:
		return "[?]"
	}
}

func nextFilter(f models.LetterStatus) models.LetterStatus {
	switch f {
	case "":
		return models.StatusDraft
	case models.StatusDraft:
		return models.StatusSigned
	default:
		return ""
	}
}
