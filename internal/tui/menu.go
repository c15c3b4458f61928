package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type MenuModel struct {
	items  []string
	idx    int
	status string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []string{"Log in", "Create account"},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if notice, ok := msg.(noticeMsg); ok {
		m.status = notice.text
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "enter":
		m.status = ""
		if m.idx == 0 {
			return m, navigate(pageLogin, nil)
		}
		return m, navigate(pageRegister, nil)
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	for i, item := range m.items {
		cursor := " "
		line := fmt.Sprintf("%d  %s", i+1, item)
		if i == m.idx {
			cursor = ">"
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(" ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(statusLines(m.status, ""))

	return renderPage("GO-ZK-VAULT", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate │ v: version")
}
