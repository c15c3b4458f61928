package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/internal/workers"
	"github.com/MKhiriev/go-zk-vault/models"
)

// VersionSource reports the build of the server the client talks to.
type VersionSource interface {
	Version(ctx context.Context) (models.AppBuildInfo, error)
}

type serverVersionMsg struct {
	info models.AppBuildInfo
	err  error
}

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global Ctrl+C quit and the build info overlay
// 3) handles NavigateTo messages
// 4) reacts to lock, session loss and clipboard events from any page
// 5) delegates all other messages to the active page
type RootModel struct {
	ctx     context.Context
	pages   map[string]tea.Model
	current string

	auth     service.ClientAuthService
	versions VersionSource
	activity *workers.Activity
	clip     *clipboardState
	logger   *logger.Logger
	now      func() time.Time

	email string

	buildInfo     models.AppBuildInfo
	serverInfo    models.AppBuildInfo
	serverInfoErr string
	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(ctx context.Context, pages map[string]tea.Model, startPage string, deps rootDeps) RootModel {
	return RootModel{
		ctx:       ctx,
		pages:     pages,
		current:   startPage,
		auth:      deps.auth,
		versions:  deps.versions,
		activity:  deps.activity,
		clip:      deps.clip,
		logger:    deps.logger,
		now:       time.Now,
		email:     deps.email,
		buildInfo: deps.buildInfo,
	}
}

type rootDeps struct {
	auth      service.ClientAuthService
	versions  VersionSource
	activity  *workers.Activity
	clip      *clipboardState
	logger    *logger.Logger
	email     string
	buildInfo models.AppBuildInfo
}

func (r RootModel) Init() tea.Cmd {
	page := r.pages[r.current]
	if page == nil {
		return nil
	}
	if r.current == pageUnlock {
		return send(unlockMsg{email: r.email})
	}
	return page.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if r.activity != nil {
			r.activity.Touch(r.now())
		}

		switch key.String() {
		case "ctrl+c":
			r.clip.clearNow()
			return r, tea.Quit
		case "v":
			if r.current == pageMenu {
				return r.toggleBuildInfo()
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case NavigateTo:
		if _, exists := r.pages[msg.Page]; !exists {
			return r, nil
		}
		r.showBuildInfo = false
		r.current = msg.Page

		if msg.Payload != nil {
			return r, send(msg.Payload)
		}
		return r, r.pages[r.current].Init()

	case authDoneMsg:
		if msg.err == nil {
			r.email = msg.email
			return r, navigate(pageVault, reloadMsg{notice: "vault unlocked"})
		}

	case lockedMsg:
		r.clip.clearNow()
		r.forgetPlaintext()
		return r, navigate(pageUnlock, unlockMsg{email: r.email, notice: msg.reason})

	case sessionLostMsg:
		r.clip.clearNow()
		r.auth.Lock()
		r.forgetPlaintext()
		return r, navigate(pageUnlock, unlockMsg{email: r.email, notice: service.UserMessage(msg.err)})

	case logoutDoneMsg:
		r.clip.clearNow()
		r.forgetPlaintext()
		r.email = ""
		notice := "signed out"
		if msg.err != nil {
			r.logger.Err(msg.err).Msg("logout failed")
			notice = "signed out locally"
		}
		return r, navigate(pageMenu, noticeMsg{text: notice})

	case copyMsg:
		return r, r.clip.copy(msg)

	case clipboardTickMsg:
		return r, r.clip.tick(msg)

	case serverVersionMsg:
		r.serverInfo = msg.info
		r.serverInfoErr = ""
		if msg.err != nil {
			r.serverInfoErr = service.UserMessage(msg.err)
		}
		return r, nil
	}

	page := r.pages[r.current]
	if page == nil {
		return r, nil
	}
	updated, cmd := page.Update(msg)
	r.pages[r.current] = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo, r.serverInfo, r.serverInfoErr)
	}
	page := r.pages[r.current]
	if page == nil {
		return renderPage("GO-ZK-VAULT", "", "")
	}

	view := page.View()
	if status := r.clip.status(); status != "" {
		view += "\n\n  " + status
	}
	return view
}

// plaintextHolder is a page that keeps decrypted vault data between
// renders.
type plaintextHolder interface {
	forget()
}

// forgetPlaintext drops decrypted data from every page once the session key
// is gone.
func (r RootModel) forgetPlaintext() {
	for _, page := range r.pages {
		if holder, ok := page.(plaintextHolder); ok {
			holder.forget()
		}
	}
}

func (r RootModel) toggleBuildInfo() (tea.Model, tea.Cmd) {
	r.showBuildInfo = !r.showBuildInfo
	if !r.showBuildInfo || r.versions == nil {
		return r, nil
	}

	ctx, versions := r.ctx, r.versions
	return r, func() tea.Msg {
		info, err := versions.Version(ctx)
		return serverVersionMsg{info: info, err: err}
	}
}
