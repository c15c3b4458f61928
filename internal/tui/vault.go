// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/models"
)

const (
	vaultTitleWidth    = 28
	vaultUsernameWidth = 24
	vaultURLWidth      = 30
)

// VaultModel lists the decrypted vault. Typing after "/" filters the loaded
// items locally; records that failed to decrypt are counted, never shown.
type VaultModel struct {
	ctx    context.Context
	vault  service.ClientVaultService
	auth   service.ClientAuthService
	logger *logger.Logger

	items    []models.DecryptedItem
	shown    []models.DecryptedItem
	failures []models.ItemFailure

	// gen changes on every forget so late listings can be recognized.
	gen int

	idx       int
	search    textinput.Model
	searching bool
	loading   bool
	status    string
	errMsg    string
}

func NewVaultModel(ctx context.Context, vault service.ClientVaultService, auth service.ClientAuthService, log *logger.Logger) *VaultModel {
	search := newInput("search title, username or url", 128, false)
	search.Prompt = "/ "

	return &VaultModel{
		ctx:    ctx,
		vault:  vault,
		auth:   auth,
		logger: log,
		search: search,
	}
}

func (m *VaultModel) Init() tea.Cmd {
	return m.reload()
}

func (m *VaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reloadMsg:
		m.status = msg.notice
		return m, m.reload()

	case noticeMsg:
		m.status = msg.text
		return m, nil

	case listLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			cmd, text := failure(m.logger, "vault.list", msg.err)
			m.errMsg = text
			return m, cmd
		}
		m.errMsg = ""
		m.items = msg.listing.Items
		m.failures = msg.listing.Failures
		for _, f := range m.failures {
			m.logger.Warn().Str("id", f.ID).Err(f.Err).Msg("vault record could not be opened")
		}
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *VaultModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.Reset()
		m.applyFilter()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *VaultModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected, hasSelection := m.selected()

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.shown)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.search):
		m.searching = true
		m.status = ""
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.esc):
		if m.search.Value() != "" {
			m.search.Reset()
			m.applyFilter()
		}
	case key.Matches(msg, keys.reload):
		m.status = ""
		return m, m.reload()
	case key.Matches(msg, keys.newItem):
		return m, navigate(pageForm, editItemMsg{})
	case key.Matches(msg, keys.generator):
		return m, navigate(pageGenerator, nil)
	case key.Matches(msg, keys.lock):
		m.auth.Lock()
		return m, send(lockedMsg{reason: "vault locked"})
	case key.Matches(msg, keys.logout):
		return m, cmdLogout(m.ctx, m.auth)
	}

	if !hasSelection {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.enter):
		return m, navigate(pageDetail, showItemMsg{item: selected})
	case key.Matches(msg, keys.edit):
		item := selected
		return m, navigate(pageForm, editItemMsg{item: &item})
	case key.Matches(msg, keys.delete):
		return m, navigate(pageConfirm, confirmDeleteMsg{item: selected})
	case key.Matches(msg, keys.copy):
		return m, copyField("password", selected.Item.Password)
	case key.Matches(msg, keys.copyUser):
		return m, copyField("username", selected.Item.Username)
	}

	return m, nil
}

func (m *VaultModel) View() string {
	var b strings.Builder

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("  %-*s │ %-*s │ %s\n", vaultTitleWidth, "Title", vaultUsernameWidth, "Username", "URL"))
	b.WriteString(strings.Repeat("─", vaultTitleWidth+vaultUsernameWidth+vaultURLWidth+8))
	b.WriteString("\n")

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString("  loading...\n")
	case len(m.shown) == 0 && len(m.items) == 0:
		b.WriteString("  the vault is empty, press n to add a record\n")
	case len(m.shown) == 0:
		b.WriteString("  nothing matches the search\n")
	}

	for i, it := range m.shown {
		cursor := " "
		line := fmt.Sprintf("%-*s │ %-*s │ %s",
			vaultTitleWidth, fitText(valueOrDash(it.Item.Title), vaultTitleWidth),
			vaultUsernameWidth, fitText(valueOrDash(it.Item.Username), vaultUsernameWidth),
			fitText(valueOrDash(it.Item.URL), vaultURLWidth),
		)
		if i == m.idx {
			cursor = ">"
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(" ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n%d of %d records", len(m.shown), len(m.items)))
	if n := len(m.failures); n > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf(" │ %d could not be decrypted", n)))
	}
	b.WriteString(statusLines(m.status, m.errMsg))

	help := "enter: open │ /: search │ n: new │ e: edit │ d: delete │ c: copy password │ u: copy username\n" +
		"  r: reload │ g: generator │ ctrl+l: lock │ o: sign out"
	if m.searching {
		help = "enter: keep filter │ esc: clear"
	}
	return renderPage("VAULT", b.String(), help)
}

func (m *VaultModel) reload() tea.Cmd {
	m.loading = true
	ctx, vault, gen := m.ctx, m.vault, m.gen
	return func() tea.Msg {
		listing, err := vault.List(ctx)
		return listLoadedMsg{gen: gen, listing: listing, err: err}
	}
}

// forget drops every decrypted item and the search query.
func (m *VaultModel) forget() {
	m.gen++
	m.items, m.shown, m.failures = nil, nil, nil
	m.idx = 0
	m.searching = false
	m.search.Blur()
	m.search.Reset()
	m.loading = false
	m.status, m.errMsg = "", ""
}

func (m *VaultModel) applyFilter() {
	m.shown = m.vault.Search(m.items, m.search.Value())
	if m.idx >= len(m.shown) {
		m.idx = max(len(m.shown)-1, 0)
	}
}

func (m *VaultModel) selected() (models.DecryptedItem, bool) {
	if m.idx < 0 || m.idx >= len(m.shown) {
		return models.DecryptedItem{}, false
	}
	return m.shown[m.idx], true
}

func copyField(label, value string) tea.Cmd {
	if value == "" {
		return send(noticeMsg{text: label + " is empty"})
	}
	return send(copyMsg{label: label, value: value})
}
