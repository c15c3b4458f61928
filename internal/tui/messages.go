package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/models"
)

// Page names registered in the [RootModel].
const (
	pageMenu      = "menu"
	pageLogin     = "login"
	pageRegister  = "register"
	pageUnlock    = "unlock"
	pageVault     = "vault"
	pageDetail    = "detail"
	pageForm      = "form"
	pageConfirm   = "confirm"
	pageGenerator = "generator"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to the
// new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// authDoneMsg finishes a login, signup or unlock attempt.
type authDoneMsg struct {
	email string
	err   error
}

// lockedMsg is sent by the auto-lock worker and by the manual lock key.
type lockedMsg struct {
	reason string
}

// sessionLostMsg is emitted by a page whose call failed because the session
// key or token is gone.
type sessionLostMsg struct {
	err error
}

type logoutDoneMsg struct {
	err error
}

// noticeMsg shows a one-line status on the receiving page.
type noticeMsg struct {
	text string
}

// reloadMsg asks the vault page to fetch the listing again.
type reloadMsg struct {
	notice string
}

// listLoadedMsg carries the generation of the vault page that asked for it;
// a listing from before the page was reset is dropped.
type listLoadedMsg struct {
	gen     int
	listing models.VaultListing
	err     error
}

type itemSavedMsg struct {
	item    models.DecryptedItem
	created bool
	err     error
}

type itemDeletedMsg struct {
	title string
	err   error
}

// showItemMsg opens the detail page for item.
type showItemMsg struct {
	item models.DecryptedItem
}

// editItemMsg opens the form; a nil item starts a new record.
type editItemMsg struct {
	item *models.DecryptedItem
}

type confirmDeleteMsg struct {
	item models.DecryptedItem
}

// unlockMsg prepares the unlock page for the given account.
type unlockMsg struct {
	email  string
	notice string
}

// copyMsg puts value on the clipboard with an auto-clear countdown.
type copyMsg struct {
	label string
	value string
}

type clipboardTickMsg struct {
	seq int
}

func navigate(page string, payload tea.Msg) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Payload: payload} }
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
