package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
)

// UnlockModel asks for the master password of the remembered account after
// a lock or a restart. It can also sign the account out.
type UnlockModel struct {
	ctx    context.Context
	auth   service.ClientAuthService
	logger *logger.Logger

	email      string
	password   textinput.Model
	submitting bool
	notice     string
	errMsg     string
}

func NewUnlockModel(ctx context.Context, auth service.ClientAuthService, log *logger.Logger) *UnlockModel {
	password := newInput("master password", 256, true)
	password.Focus()

	return &UnlockModel{
		ctx:      ctx,
		auth:     auth,
		logger:   log,
		password: password,
	}
}

func (m *UnlockModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *UnlockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case unlockMsg:
		m.email = msg.email
		m.notice = msg.notice
		m.errMsg = ""
		m.submitting = false
		m.password.Reset()
		m.password.Focus()
		return m, textinput.Blink

	case authDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.logger.Err(msg.err).Msg("unlock failed")
			m.notice = ""
			m.errMsg = service.UserMessage(msg.err)
			m.password.Reset()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.submitting {
				return m, nil
			}
			if m.password.Value() == "" {
				m.errMsg = "master password is required"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdUnlock(m.password.Value())
		case "ctrl+o":
			if m.submitting {
				return m, nil
			}
			return m, cmdLogout(m.ctx, m.auth)
		}
	}

	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

func (m *UnlockModel) View() string {
	var b strings.Builder
	b.WriteString("Account   │ ")
	b.WriteString(valueOrDash(m.email))
	b.WriteString("\nPassword  │ ")
	b.WriteString(m.password.View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Unlocking...]")
	} else {
		b.WriteString("\n[Unlock]")
	}
	b.WriteString(statusLines(m.notice, m.errMsg))

	return renderPage("VAULT LOCKED", b.String(), "enter: unlock │ ctrl+o: sign out")
}

func (m *UnlockModel) cmdUnlock(password string) tea.Cmd {
	ctx, auth, email := m.ctx, m.auth, m.email
	return func() tea.Msg {
		return authDoneMsg{email: email, err: auth.Unlock(ctx, password)}
	}
}

func cmdLogout(ctx context.Context, auth service.ClientAuthService) tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: auth.Logout(ctx)}
	}
}
