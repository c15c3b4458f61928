// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
)

// Activity records the time of the last user interaction. The zero value is
// ready to use and counts as "active now" until the first Touch.
type Activity struct {
	last atomic.Int64
}

// Touch marks now as the latest interaction.
func (a *Activity) Touch(now time.Time) {
	a.last.Store(now.UnixNano())
}

// IdleFor reports how long no interaction has been recorded.
func (a *Activity) IdleFor(now time.Time) time.Duration {
	last := a.last.Load()
	if last == 0 {
		a.last.CompareAndSwap(0, now.UnixNano())
		return 0
	}
	return now.Sub(time.Unix(0, last))
}

// AutoLock clears the session key after a period of inactivity.
type AutoLock struct {
	locker   Locker
	activity *Activity
	after    time.Duration
	onLock   func()
	now      func() time.Time

	logger *logger.Logger
}

// NewAutoLock returns the idle lock worker. onLock, when set, is called after
// each lock so the UI can return to the login screen.
func NewAutoLock(locker Locker, activity *Activity, after time.Duration, onLock func(), logger *logger.Logger) *AutoLock {
	return &AutoLock{
		locker:   locker,
		activity: activity,
		after:    after,
		onLock:   onLock,
		now:      time.Now,
		logger:   logger,
	}
}

// Run checks for idleness a few times per lock window.
func (a *AutoLock) Run(ctx context.Context) {
	NewTicker("auto-lock", a.checkInterval(), func(context.Context) { a.check() }, a.logger).Run(ctx)
}

func (a *AutoLock) checkInterval() time.Duration {
	if a.after <= 0 {
		return 0
	}
	interval := a.after / 4
	if interval > time.Second {
		interval = time.Second
	}
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	return interval
}

// check locks when the session is unlocked and idle for at least after.
// It reports whether a lock happened.
func (a *AutoLock) check() bool {
	if !a.locker.IsPresent() {
		return false
	}

	idle := a.activity.IdleFor(a.now())
	if idle < a.after {
		return false
	}

	a.locker.Clear()
	a.logger.Info().Dur("idle", idle).Msg("session locked after inactivity")

	if a.onLock != nil {
		a.onLock()
	}
	return true
}
