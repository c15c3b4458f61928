package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
)

// failure logs err and returns either a sessionLostMsg command, when the
// user must unlock again, or the message to show on the page.
func failure(log *logger.Logger, op string, err error) (tea.Cmd, string) {
	log.Err(err).Str("op", op).Msg("tui operation failed")

	if service.IsSessionLost(err) {
		return send(sessionLostMsg{err: err}), ""
	}
	return nil, service.UserMessage(err)
}
