package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputGroup is a list of text inputs with a single focused entry.
type inputGroup struct {
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string, limit int, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

func newInputGroup(inputs ...textinput.Model) inputGroup {
	g := inputGroup{inputs: inputs}
	if len(g.inputs) > 0 {
		g.inputs[0].Focus()
	}
	return g
}

func (g *inputGroup) focusNext() {
	g.inputs[g.focus].Blur()
	g.focus = (g.focus + 1) % len(g.inputs)
	g.inputs[g.focus].Focus()
}

func (g *inputGroup) focusPrev() {
	g.inputs[g.focus].Blur()
	g.focus = (g.focus - 1 + len(g.inputs)) % len(g.inputs)
	g.inputs[g.focus].Focus()
}

func (g *inputGroup) focusFirst() {
	g.inputs[g.focus].Blur()
	g.focus = 0
	g.inputs[0].Focus()
}

func (g *inputGroup) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	g.inputs[g.focus], cmd = g.inputs[g.focus].Update(msg)
	return cmd
}

func (g *inputGroup) value(i int) string {
	return g.inputs[i].Value()
}

func (g *inputGroup) reset() {
	for i := range g.inputs {
		g.inputs[i].Reset()
	}
	g.focusFirst()
}

func (g *inputGroup) view(i int) string {
	return g.inputs[i].View()
}
