package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/utils"
)

// GeneratorModel is a standalone password generator. Changing any option
// produces a fresh password.
type GeneratorModel struct {
	opts     utils.PasswordOptions
	password string
	errMsg   string
}

func NewGeneratorModel() *GeneratorModel {
	return &GeneratorModel{opts: utils.DefaultPasswordOptions()}
}

func (m *GeneratorModel) Init() tea.Cmd {
	m.regenerate()
	return nil
}

func (m *GeneratorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		return m, navigate(pageVault, noticeMsg{})
	case key.Matches(keyMsg, keys.left):
		m.setLength(m.opts.Length - 1)
	case key.Matches(keyMsg, keys.right):
		m.setLength(m.opts.Length + 1)
	case key.Matches(keyMsg, keys.copy):
		return m, copyField("generated password", m.password)
	case key.Matches(keyMsg, keys.reload), key.Matches(keyMsg, keys.enter):
		m.regenerate()
	default:
		if !m.toggle(keyMsg.String()) {
			return m, nil
		}
		m.regenerate()
	}

	return m, nil
}

func (m *GeneratorModel) View() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Length            │ %d\n", m.opts.Length))
	b.WriteString("1  Lowercase      │ " + checkbox(m.opts.Lowercase) + "\n")
	b.WriteString("2  Uppercase      │ " + checkbox(m.opts.Uppercase) + "\n")
	b.WriteString("3  Digits         │ " + checkbox(m.opts.Digits) + "\n")
	b.WriteString("4  Symbols        │ " + checkbox(m.opts.Symbols) + "\n")
	b.WriteString("x  No look-alikes │ " + checkbox(m.opts.ExcludeLookAlike) + "\n\n")
	b.WriteString("Password          │ ")
	b.WriteString(selectedStyle.Render(valueOrDash(m.password)))
	b.WriteString(statusLines("", m.errMsg))

	return renderPage("PASSWORD GENERATOR", b.String(), "←/→: length │ 1-4, x: toggle │ r: regenerate │ c: copy │ esc: back")
}

func (m *GeneratorModel) setLength(n int) {
	n = min(max(n, utils.MinPasswordLength), utils.MaxPasswordLength)
	if n == m.opts.Length {
		return
	}
	m.opts.Length = n
	m.regenerate()
}

func (m *GeneratorModel) toggle(k string) bool {
	switch k {
	case "1":
		m.opts.Lowercase = !m.opts.Lowercase
	case "2":
		m.opts.Uppercase = !m.opts.Uppercase
	case "3":
		m.opts.Digits = !m.opts.Digits
	case "4":
		m.opts.Symbols = !m.opts.Symbols
	case "x":
		m.opts.ExcludeLookAlike = !m.opts.ExcludeLookAlike
	default:
		return false
	}
	return true
}

func (m *GeneratorModel) regenerate() {
	password, err := utils.GeneratePassword(m.opts)
	if err != nil {
		m.password = ""
		m.errMsg = err.Error()
		return
	}
	m.password = password
	m.errMsg = ""
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
