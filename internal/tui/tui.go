// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal interface of the vault client.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/workers"
	"github.com/MKhiriev/go-zk-vault/models"
)

type TUI struct {
	services  *service.ClientServices
	versions  VersionSource
	cfg       config.Workers
	buildInfo models.AppBuildInfo
	clipboard Clipboard
	logger    *logger.Logger
}

func New(services *service.ClientServices, versions VersionSource, cfg config.Workers, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		versions:  versions,
		cfg:       cfg,
		buildInfo: buildInfo,
		clipboard: systemClipboard{},
		logger:    log,
	}
}

// Run shows the interface until the user quits or ctx is cancelled. A
// remembered account starts on the unlock page. The vault is locked on exit.
func (t *TUI) Run(ctx context.Context) error {
	start, email := pageMenu, ""
	sess, err := t.services.AuthService.Restore(ctx)
	switch {
	case err == nil:
		start, email = pageUnlock, sess.Email
	case !errors.Is(err, store.ErrLocalSessionNotFound):
		t.logger.Warn().Err(err).Msg("could not restore local session")
	}

	activity := &workers.Activity{}
	activity.Touch(time.Now())
	clip := newClipboardState(t.clipboard, t.cfg.ClipboardClearAfter, t.logger)

	root := NewRootModel(ctx, t.pages(ctx), start, rootDeps{
		auth:      t.services.AuthService,
		versions:  t.versions,
		activity:  activity,
		clip:      clip,
		logger:    t.logger,
		email:     email,
		buildInfo: t.buildInfo,
	})

	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	lockCtx, stopLock := context.WithCancel(ctx)
	autoLock := workers.NewAutoLock(t.services.Session, activity, t.cfg.AutoLockAfter, func() {
		program.Send(lockedMsg{reason: "vault locked after inactivity"})
	}, t.logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		autoLock.Run(lockCtx)
	}()

	_, runErr := program.Run()

	stopLock()
	<-done
	clip.clearNow()
	t.services.AuthService.Lock()

	if runErr != nil && !(errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return runErr
	}
	return nil
}

func (t *TUI) pages(ctx context.Context) map[string]tea.Model {
	auth, vault := t.services.AuthService, t.services.VaultService

	return map[string]tea.Model{
		pageMenu:      NewMenuModel(),
		pageLogin:     NewLoginModel(ctx, auth, t.logger),
		pageRegister:  NewRegisterModel(ctx, auth, t.logger),
		pageUnlock:    NewUnlockModel(ctx, auth, t.logger),
		pageVault:     NewVaultModel(ctx, vault, auth, t.logger),
		pageDetail:    NewDetailModel(),
		pageForm:      NewFormModel(ctx, vault, t.logger),
		pageConfirm:   NewConfirmModel(ctx, vault, t.logger),
		pageGenerator: NewGeneratorModel(),
	}
}
