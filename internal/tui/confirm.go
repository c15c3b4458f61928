package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/models"
)

// ConfirmModel asks before a record is deleted.
type ConfirmModel struct {
	ctx    context.Context
	vault  service.ClientVaultService
	logger *logger.Logger

	item     models.DecryptedItem
	deleting bool
	errMsg   string
}

func NewConfirmModel(ctx context.Context, vault service.ClientVaultService, log *logger.Logger) *ConfirmModel {
	return &ConfirmModel{ctx: ctx, vault: vault, logger: log}
}

func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case confirmDeleteMsg:
		m.item = msg.item
		m.deleting = false
		m.errMsg = ""
		return m, nil

	case itemDeletedMsg:
		m.deleting = false
		if msg.err != nil {
			cmd, text := failure(m.logger, "vault.delete", msg.err)
			m.errMsg = text
			return m, cmd
		}
		return m, navigate(pageVault, reloadMsg{notice: fmt.Sprintf("%q deleted", msg.title)})

	case tea.KeyMsg:
		if m.deleting {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.yes):
			m.deleting = true
			return m, m.cmdDelete()
		case key.Matches(msg, keys.no):
			return m, navigate(pageVault, noticeMsg{})
		}
	}

	return m, nil
}

func (m *ConfirmModel) View() string {
	body := fmt.Sprintf("Delete %q?\nThe record is removed from the server and cannot be restored.",
		valueOrDash(m.item.Item.Title))
	if m.deleting {
		body += "\n\n[Deleting...]"
	}
	body += statusLines("", m.errMsg)

	return renderPage("DELETE RECORD", body, "y: delete │ n/esc: cancel")
}

func (m *ConfirmModel) cmdDelete() tea.Cmd {
	ctx, vault, item := m.ctx, m.vault, m.item
	return func() tea.Msg {
		return itemDeletedMsg{title: item.Item.Title, err: vault.Delete(ctx, item.ID)}
	}
}

func (m *ConfirmModel) forget() {
	m.item = models.DecryptedItem{}
	m.deleting = false
	m.errMsg = ""
}
