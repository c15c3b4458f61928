package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/models"
)

const detailTimeLayout = "2006-01-02 15:04"

// DetailModel shows one decrypted record. The password stays masked until
// revealed.
type DetailModel struct {
	item   models.DecryptedItem
	reveal bool
	status string
}

func NewDetailModel() *DetailModel {
	return &DetailModel{}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case showItemMsg:
		m.item = msg.item
		m.reveal = false
		m.status = ""
		return m, nil

	case noticeMsg:
		m.status = msg.text
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.reveal = false
			return m, navigate(pageVault, noticeMsg{})
		case key.Matches(msg, keys.reveal):
			m.reveal = !m.reveal
		case key.Matches(msg, keys.copy):
			return m, copyField("password", m.item.Item.Password)
		case key.Matches(msg, keys.copyUser):
			return m, copyField("username", m.item.Item.Username)
		case key.Matches(msg, keys.edit):
			item := m.item
			return m, navigate(pageForm, editItemMsg{item: &item})
		case key.Matches(msg, keys.delete):
			return m, navigate(pageConfirm, confirmDeleteMsg{item: m.item})
		}
	}

	return m, nil
}

func (m *DetailModel) View() string {
	password := mask(m.item.Item.Password)
	if m.reveal {
		password = valueOrDash(m.item.Item.Password)
	}

	var b strings.Builder
	b.WriteString("Title     │ " + valueOrDash(m.item.Item.Title) + "\n")
	b.WriteString("Username  │ " + valueOrDash(m.item.Item.Username) + "\n")
	b.WriteString("Password  │ " + password + "\n")
	b.WriteString("URL       │ " + valueOrDash(m.item.Item.URL) + "\n")
	b.WriteString("Notes     │ ")
	b.WriteString(strings.ReplaceAll(valueOrDash(m.item.Item.Notes), "\n", "\n          │ "))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("created " + formatTime(m.item.CreatedAt) + " │ updated " + formatTime(m.item.UpdatedAt)))
	b.WriteString(statusLines(m.status, ""))

	return renderPage("RECORD", b.String(), "esc: back │ s: show/hide password │ c: copy password │ u: copy username │ e: edit │ d: delete")
}

func (m *DetailModel) forget() {
	m.item = models.DecryptedItem{}
	m.reveal = false
	m.status = ""
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(detailTimeLayout)
}
