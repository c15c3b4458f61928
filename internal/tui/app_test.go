package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/mock"
	"github.com/MKhiriev/go-zk-vault/internal/workers"
	"github.com/MKhiriev/go-zk-vault/models"
)

// stubPage records what the router delivers to it.
type stubPage struct {
	name     string
	inits    int
	received []tea.Msg
}

func (p *stubPage) Init() tea.Cmd {
	p.inits++
	return nil
}

func (p *stubPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p.received = append(p.received, msg)
	return p, nil
}

func (p *stubPage) View() string { return p.name }

type versionFunc func(ctx context.Context) (models.AppBuildInfo, error)

func (f versionFunc) Version(ctx context.Context) (models.AppBuildInfo, error) { return f(ctx) }

type rootFixture struct {
	root     RootModel
	pages    map[string]*stubPage
	auth     *mock.MockClientAuthService
	clip     *fakeClipboard
	activity *workers.Activity
}

func newRootFixture(t *testing.T, start string) *rootFixture {
	t.Helper()

	f := &rootFixture{
		pages:    map[string]*stubPage{},
		auth:     mock.NewMockClientAuthService(gomock.NewController(t)),
		clip:     &fakeClipboard{},
		activity: &workers.Activity{},
	}
	pages := map[string]tea.Model{}
	for _, name := range []string{pageMenu, pageLogin, pageUnlock, pageVault} {
		p := &stubPage{name: name}
		f.pages[name] = p
		pages[name] = p
	}

	f.root = NewRootModel(context.Background(), pages, start, rootDeps{
		auth: f.auth,
		versions: versionFunc(func(context.Context) (models.AppBuildInfo, error) {
			return models.NewAppBuildInfo("v1.2.0", "2026-10-01", "abc123"), nil
		}),
		activity:  f.activity,
		clip:      newClipboardState(f.clip, time.Second, logger.Nop()),
		logger:    logger.Nop(),
		email:     "alice@example.com",
		buildInfo: models.NewAppBuildInfo("v1.2.0", "", ""),
	})
	return f
}

// copy puts value on the fake clipboard without waiting for the countdown tick.
func (f *rootFixture) copy(value string) {
	next, _ := f.root.Update(copyMsg{label: "password", value: value})
	f.root = next.(RootModel)
}

// step feeds msg to the router and returns the message its command yields.
func (f *rootFixture) step(t *testing.T, msg tea.Msg) tea.Msg {
	t.Helper()
	next, cmd := f.root.Update(msg)
	f.root = next.(RootModel)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestRootModel_Navigate(t *testing.T) {
	f := newRootFixture(t, pageMenu)

	assert.Nil(t, f.step(t, NavigateTo{Page: pageLogin}))
	assert.Equal(t, pageLogin, f.root.current)
	assert.Equal(t, 1, f.pages[pageLogin].inits)

	payload := noticeMsg{text: "hello"}
	assert.Equal(t, payload, f.step(t, NavigateTo{Page: pageMenu, Payload: payload}))
	assert.Equal(t, pageMenu, f.root.current)
	assert.Zero(t, f.pages[pageMenu].inits)

	f.step(t, NavigateTo{Page: "nowhere"})
	assert.Equal(t, pageMenu, f.root.current)
}

func TestRootModel_InitOnUnlockSendsEmail(t *testing.T) {
	f := newRootFixture(t, pageUnlock)

	cmd := f.root.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, unlockMsg{email: "alice@example.com"}, cmd())
}

func TestRootModel_DelegatesToCurrentPage(t *testing.T) {
	f := newRootFixture(t, pageMenu)

	f.step(t, runeKey("j"))
	require.Len(t, f.pages[pageMenu].received, 1)
	assert.Equal(t, runeKey("j"), f.pages[pageMenu].received[0])
}

func TestRootModel_KeyTouchesActivity(t *testing.T) {
	f := newRootFixture(t, pageMenu)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	f.root.now = func() time.Time { return now }

	f.step(t, runeKey("j"))
	assert.Zero(t, f.activity.IdleFor(now))
	assert.Equal(t, time.Minute, f.activity.IdleFor(now.Add(time.Minute)))
}

func TestRootModel_AuthDone(t *testing.T) {
	f := newRootFixture(t, pageLogin)

	failed := authDoneMsg{email: "bob@example.com", err: adapter.ErrUnauthorized}
	assert.Nil(t, f.step(t, failed))
	assert.Equal(t, []tea.Msg{failed}, f.pages[pageLogin].received)

	got := f.step(t, authDoneMsg{email: "bob@example.com"})
	assert.Equal(t, NavigateTo{Page: pageVault, Payload: reloadMsg{notice: "vault unlocked"}}, got)
	assert.Equal(t, "bob@example.com", f.root.email)
}

func TestRootModel_LockedClearsClipboard(t *testing.T) {
	f := newRootFixture(t, pageVault)

	f.copy("s3cret")
	require.Equal(t, "s3cret", f.clip.content)

	got := f.step(t, lockedMsg{reason: "vault locked after inactivity"})
	assert.Equal(t, NavigateTo{
		Page:    pageUnlock,
		Payload: unlockMsg{email: "alice@example.com", notice: "vault locked after inactivity"},
	}, got)
	assert.Empty(t, f.clip.content)
}

func TestRootModel_SessionLostLocks(t *testing.T) {
	f := newRootFixture(t, pageVault)
	f.auth.EXPECT().Lock()

	got := f.step(t, sessionLostMsg{err: adapter.ErrUnauthorized})
	nav, ok := got.(NavigateTo)
	require.True(t, ok)
	assert.Equal(t, pageUnlock, nav.Page)
	assert.Equal(t, "alice@example.com", nav.Payload.(unlockMsg).email)
}

func TestRootModel_LogoutDone(t *testing.T) {
	f := newRootFixture(t, pageUnlock)

	got := f.step(t, logoutDoneMsg{err: errors.New("server down")})
	assert.Equal(t, NavigateTo{Page: pageMenu, Payload: noticeMsg{text: "signed out locally"}}, got)
	assert.Empty(t, f.root.email)
}

func TestRootModel_BuildInfoOverlay(t *testing.T) {
	f := newRootFixture(t, pageMenu)

	got := f.step(t, runeKey("v"))
	require.IsType(t, serverVersionMsg{}, got)
	assert.True(t, f.root.showBuildInfo)

	f.step(t, got)
	view := f.root.View()
	assert.Contains(t, view, "v1.2.0")
	assert.Contains(t, view, "abc123")

	f.step(t, runeKey("j"))
	assert.Empty(t, f.pages[pageMenu].received)

	f.step(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.root.showBuildInfo)
	assert.Equal(t, pageMenu, f.root.View())
}

func TestRootModel_BuildInfoOnlyOnMenu(t *testing.T) {
	f := newRootFixture(t, pageVault)

	f.step(t, runeKey("v"))
	assert.False(t, f.root.showBuildInfo)
	assert.Len(t, f.pages[pageVault].received, 1)
}

func TestRootModel_Quit(t *testing.T) {
	f := newRootFixture(t, pageVault)
	f.copy("s3cret")

	got := f.step(t, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.IsType(t, tea.QuitMsg{}, got)
	assert.Empty(t, f.clip.content)
}

func TestRootModel_PagesForgetPlaintext(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.Msg
		wantLock bool
	}{
		{name: "locked", msg: lockedMsg{reason: "vault locked"}},
		{name: "session lost", msg: sessionLostMsg{err: adapter.ErrUnauthorized}, wantLock: true},
		{name: "logged out", msg: logoutDoneMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRootFixture(t, pageVault)
			if tt.wantLock {
				f.auth.EXPECT().Lock()
			}

			vf := newVaultFixture(t)
			vf.loaded()
			detail := NewDetailModel()
			detail.Update(showItemMsg{item: testItems[0]})
			form := NewFormModel(context.Background(), vf.vault, logger.Nop())
			form.Update(editItemMsg{item: &testItems[0]})
			confirm := NewConfirmModel(context.Background(), vf.vault, logger.Nop())
			confirm.Update(confirmDeleteMsg{item: testItems[0]})

			holders := map[string]tea.Model{pageVault: vf.page, pageDetail: detail, pageForm: form, pageConfirm: confirm}
			for name, page := range holders {
				f.root.pages[name] = page
				require.Contains(t, page.View(), "GitHub", name)
			}

			f.step(t, tt.msg)

			assert.Nil(t, vf.page.items)
			assert.Empty(t, form.editID)
			assert.Empty(t, form.item())
			for name, page := range holders {
				view := page.View()
				assert.NotContains(t, view, "GitHub", name)
				assert.NotContains(t, view, "gh-pass", name)
			}
		})
	}
}
