package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/models"
)

// minMasterPasswordLength is enforced before an account is created.
const minMasterPasswordLength = 8

// RegisterModel is the account creation screen.
type RegisterModel struct {
	ctx    context.Context
	auth   service.ClientAuthService
	logger *logger.Logger

	form       inputGroup
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService, log *logger.Logger) *RegisterModel {
	return &RegisterModel{
		ctx:    ctx,
		auth:   auth,
		logger: log,
		form: newInputGroup(
			newInput("email", 254, false),
			newInput("master password", 256, true),
			newInput("repeat master password", 256, true),
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	m.submitting = false
	m.errMsg = ""
	m.form.reset()
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authDoneMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.logger.Err(result.err).Msg("signup failed")
			m.errMsg = service.UserMessage(result.err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, navigate(pageMenu, noticeMsg{})
		case "tab", "down":
			m.form.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.form.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			creds := models.Credentials{
				Email:    strings.TrimSpace(m.form.value(0)),
				Password: m.form.value(1),
			}
			if m.errMsg = validateSignUp(creds, m.form.value(2)); m.errMsg != "" {
				return m, nil
			}
			m.submitting = true
			return m, m.cmdSignUp(creds)
		}
	}

	return m, m.form.update(msg)
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Email     │ ")
	b.WriteString(m.form.view(0))
	b.WriteString("\nPassword  │ ")
	b.WriteString(m.form.view(1))
	b.WriteString("\nRepeat    │ ")
	b.WriteString(m.form.view(2))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("The master password never leaves this device and cannot be recovered."))
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Creating account...]")
	} else {
		b.WriteString("\n[Create account]")
	}
	b.WriteString(statusLines("", m.errMsg))

	return renderPage("CREATE ACCOUNT", b.String(), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdSignUp(creds models.Credentials) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		err := auth.SignUp(ctx, creds)
		return authDoneMsg{email: models.NormalizeEmail(creds.Email), err: err}
	}
}

func validateSignUp(creds models.Credentials, repeat string) string {
	switch {
	case creds.Email == "" || creds.Password == "":
		return "email and master password are required"
	case len([]rune(creds.Password)) < minMasterPasswordLength:
		return "master password must be at least 8 characters"
	case creds.Password != repeat:
		return "passwords do not match"
	}
	return ""
}
