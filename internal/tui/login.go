// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

// LoginModel is the login screen. On submit it authenticates, fetches the
// account salt and derives the session key; the resulting [authDoneMsg] is
// finished by [RootModel] on success.
type LoginModel struct {
	ctx    context.Context
	auth   service.ClientAuthService
	logger *logger.Logger

	form       inputGroup
	submitting bool
	errMsg     string
}

func NewLoginModel(ctx context.Context, auth service.ClientAuthService, log *logger.Logger) *LoginModel {
	return &LoginModel{
		ctx:    ctx,
		auth:   auth,
		logger: log,
		form: newInputGroup(
			newInput("email", 254, false),
			newInput("master password", 256, true),
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	m.submitting = false
	m.errMsg = ""
	m.form.reset()
	return textinput.Blink
}

// Update handles:
//   - authDoneMsg: a failed attempt, shown as an error
//   - esc: back to the menu
//   - tab / shift+tab: focus
//   - enter: submit
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authDoneMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.logger.Err(result.err).Msg("login failed")
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
			email := strings.TrimSpace(m.form.value(0))
			password := m.form.value(1)
			if email == "" || password == "" {
				m.errMsg = "email and master password are required"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(models.Credentials{Email: email, Password: password})
		}
	}

	return m, m.form.update(msg)
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Email     │ ")
	b.WriteString(m.form.view(0))
	b.WriteString("\nPassword  │ ")
	b.WriteString(m.form.view(1))
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Unlocking...]")
	} else {
		b.WriteString("\n[Log in]")
	}
	b.WriteString(statusLines("", m.errMsg))

	return renderPage("LOG IN", b.String(), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		err := auth.Login(ctx, creds)
		return authDoneMsg{email: models.NormalizeEmail(creds.Email), err: err}
	}
}
