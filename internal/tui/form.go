// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/models"
)

const (
	fieldTitle = iota
	fieldUsername
	fieldPassword
	fieldURL
	fieldNotes
	fieldCount
)

// FormModel creates a record or edits an existing one. Every save seals the
// whole item again.
type FormModel struct {
	ctx    context.Context
	vault  service.ClientVaultService
	logger *logger.Logger

	editID string
	inputs []textinput.Model
	notes  textarea.Model
	focus  int

	showPassword bool
	saving       bool
	errMsg       string
}

func NewFormModel(ctx context.Context, vault service.ClientVaultService, log *logger.Logger) *FormModel {
	notes := textarea.New()
	notes.Placeholder = "notes"
	notes.CharLimit = 4096
	notes.SetWidth(60)
	notes.SetHeight(4)
	notes.ShowLineNumbers = false

	return &FormModel{
		ctx:    ctx,
		vault:  vault,
		logger: log,
		inputs: []textinput.Model{
			newInput("title", 256, false),
			newInput("username", 256, false),
			newInput("password", 1024, true),
			newInput("https://", 2048, false),
		},
		notes: notes,
	}
}

func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editItemMsg:
		m.load(msg.item)
		return m, textinput.Blink

	case itemSavedMsg:
		m.saving = false
		if msg.err != nil {
			cmd, text := failure(m.logger, "vault.save", msg.err)
			m.errMsg = text
			return m, cmd
		}
		verb := "updated"
		if msg.created {
			verb = "created"
		}
		return m, navigate(pageVault, reloadMsg{notice: fmt.Sprintf("%q %s", msg.item.Item.Title, verb)})

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, navigate(pageVault, noticeMsg{})
		case "tab":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
			return m, nil
		case "ctrl+g":
			m.generatePassword()
			return m, nil
		case "ctrl+r":
			m.showPassword = !m.showPassword
			if m.showPassword {
				m.inputs[fieldPassword].EchoMode = textinput.EchoNormal
			} else {
				m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
			}
			return m, nil
		case "ctrl+s":
			return m, m.submit()
		case "enter":
			if m.focus == fieldNotes {
				break
			}
			if m.focus == fieldURL {
				return m, m.submit()
			}
			m.setFocus(m.focus + 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldNotes {
		m.notes, cmd = m.notes.Update(msg)
	} else {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *FormModel) View() string {
	labels := [...]string{"Title", "Username", "Password", "URL"}

	var b strings.Builder
	for i, in := range m.inputs {
		b.WriteString(fmt.Sprintf("%-9s │ %s\n", labels[i], in.View()))
	}
	b.WriteString("Notes     │\n")
	b.WriteString(m.notes.View())
	b.WriteString("\n")

	if m.saving {
		b.WriteString("\n[Encrypting and saving...]")
	} else {
		b.WriteString("\n[Save]")
	}
	b.WriteString(statusLines("", m.errMsg))

	title := "NEW RECORD"
	if m.editID != "" {
		title = "EDIT RECORD"
	}
	return renderPage(title, b.String(),
		"tab: next field │ ctrl+g: generate password │ ctrl+r: show/hide password │ ctrl+s: save │ esc: cancel")
}

// item reads the form back into a plaintext record.
func (m *FormModel) item() models.VaultItem {
	return models.VaultItem{
		Title:    strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Password: m.inputs[fieldPassword].Value(),
		URL:      strings.TrimSpace(m.inputs[fieldURL].Value()),
		Notes:    m.notes.Value(),
	}
}

func (m *FormModel) load(item *models.DecryptedItem) {
	m.editID = ""
	m.errMsg = ""
	m.saving = false
	m.showPassword = false
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword

	values := models.VaultItem{}
	if item != nil {
		m.editID = item.ID
		values = item.Item
	}
	m.inputs[fieldTitle].SetValue(values.Title)
	m.inputs[fieldUsername].SetValue(values.Username)
	m.inputs[fieldPassword].SetValue(values.Password)
	m.inputs[fieldURL].SetValue(values.URL)
	m.notes.SetValue(values.Notes)
	m.setFocus(fieldTitle)
}

// forget empties every field, including one being edited.
func (m *FormModel) forget() {
	m.load(nil)
}

func (m *FormModel) setFocus(field int) {
	if m.focus == fieldNotes {
		m.notes.Blur()
	} else {
		m.inputs[m.focus].Blur()
	}

	m.focus = field
	if m.focus == fieldNotes {
		m.notes.Focus()
	} else {
		m.inputs[m.focus].Focus()
	}
}

func (m *FormModel) generatePassword() {
	password, err := utils.GeneratePassword(utils.DefaultPasswordOptions())
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.inputs[fieldPassword].SetValue(password)
	m.errMsg = ""
}

func (m *FormModel) submit() tea.Cmd {
	item := m.item()
	if item.Title == "" {
		m.errMsg = "title is required"
		m.setFocus(fieldTitle)
		return nil
	}

	m.errMsg = ""
	m.saving = true

	ctx, vault, id := m.ctx, m.vault, m.editID
	return func() tea.Msg {
		if id == "" {
			created, err := vault.Create(ctx, item)
			return itemSavedMsg{item: created, created: true, err: err}
		}
		updated, err := vault.Update(ctx, id, item)
		return itemSavedMsg{item: updated, err: err}
	}
}
