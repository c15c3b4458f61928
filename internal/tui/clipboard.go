// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
)

// DefaultClipboardClearAfter is used when no positive delay is configured.
const DefaultClipboardClearAfter = 12 * time.Second

// Clipboard is the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// clipboardState tracks the value we last copied and the countdown until it
// is wiped. Each copy bumps seq so ticks from an older countdown are ignored.
type clipboardState struct {
	cb         Clipboard
	clearAfter time.Duration
	logger     *logger.Logger

	value     string
	label     string
	remaining int
	seq       int
	errMsg    string
}

func newClipboardState(cb Clipboard, clearAfter time.Duration, log *logger.Logger) *clipboardState {
	if clearAfter <= 0 {
		clearAfter = DefaultClipboardClearAfter
	}
	return &clipboardState{cb: cb, clearAfter: clearAfter, logger: log}
}

func (c *clipboardState) copy(msg copyMsg) tea.Cmd {
	c.seq++
	c.errMsg = ""

	if err := c.cb.WriteAll(msg.value); err != nil {
		c.logger.Err(err).Msg("clipboard write failed")
		c.value, c.label, c.remaining = "", "", 0
		c.errMsg = "clipboard is unavailable"
		return nil
	}

	c.value = msg.value
	c.label = msg.label
	c.remaining = int((c.clearAfter + time.Second - 1) / time.Second)
	return c.tickCmd()
}

func (c *clipboardState) tick(msg clipboardTickMsg) tea.Cmd {
	if msg.seq != c.seq || c.value == "" {
		return nil
	}
	c.remaining--
	if c.remaining > 0 {
		return c.tickCmd()
	}
	c.clearNow()
	return nil
}

// clearNow wipes the clipboard if it still holds the value we put there.
func (c *clipboardState) clearNow() {
	if c.value == "" {
		return
	}
	defer func() {
		c.value, c.label, c.remaining = "", "", 0
		c.seq++
	}()

	current, err := c.cb.ReadAll()
	if err != nil {
		c.logger.Err(err).Msg("clipboard read failed")
		return
	}
	if current != c.value {
		return
	}
	if err = c.cb.WriteAll(""); err != nil {
		c.logger.Err(err).Msg("clipboard clear failed")
	}
}

func (c *clipboardState) status() string {
	if c.errMsg != "" {
		return errorStyle.Render(c.errMsg)
	}
	if c.value == "" {
		return ""
	}
	return helpStyle.Render(fmt.Sprintf("%s copied, clipboard clears in %ds", c.label, c.remaining))
}

func (c *clipboardState) tickCmd() tea.Cmd {
	seq := c.seq
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clipboardTickMsg{seq: seq}
	})
}
