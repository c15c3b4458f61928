// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
)

// markerTimeout bounds marker writes issued from methods that take no
// context.
const markerTimeout = 2 * time.Second

// Manager holds at most one session key. The epoch counter changes on every
// install and every clear so callers can detect that the key they used is
// no longer current.
type Manager struct {
	salts   SaltSource
	kdf     crypto.KeyDerivationService
	markers store.SessionRepository

	mu    sync.Mutex
	key   *crypto.Key
	epoch uint64

	logger *logger.Logger
}

func NewManager(salts SaltSource, kdf crypto.KeyDerivationService, markers store.SessionRepository, logger *logger.Logger) *Manager {
	return &Manager{
		salts:   salts,
		kdf:     kdf,
		markers: markers,
		logger:  logger,
	}
}

// Acquire fetches the account salt and installs the key derived from
// password. Any previously installed key is destroyed before the
// derivation starts, so a failed Acquire always leaves the session locked.
func (m *Manager) Acquire(ctx context.Context, email, password string) error {
	startEpoch := m.dropKey()

	salt, err := m.salts.FetchSalt(ctx, email)
	if err != nil {
		m.clearMarkerAt(ctx, startEpoch)
		return fmt.Errorf("fetch salt: %w", err)
	}

	return m.install(ctx, startEpoch, password, salt)
}

// AcquireWithSalt installs the key derived from password and an already
// known salt, as returned by signup or login.
func (m *Manager) AcquireWithSalt(ctx context.Context, password, encodedSalt string) error {
	startEpoch := m.dropKey()
	return m.install(ctx, startEpoch, password, encodedSalt)
}

func (m *Manager) install(ctx context.Context, startEpoch uint64, password, encodedSalt string) error {
	key, err := m.kdf.DeriveKeyFromEncoded(password, encodedSalt)
	if err != nil {
		m.clearMarkerAt(ctx, startEpoch)
		return fmt.Errorf("derive key: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != startEpoch {
		key.Destroy()
		return ErrAcquireSuperseded
	}

	if err = m.markers.SetMarker(ctx, true); err != nil {
		key.Destroy()
		m.epoch++
		return fmt.Errorf("set key marker: %w", err)
	}

	m.key = key
	m.epoch++
	m.logger.Debug().Uint64("epoch", m.epoch).Msg("session key installed")

	return nil
}

// dropKey destroys the current key, bumps the epoch and returns the new
// epoch value.
func (m *Manager) dropKey() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.destroyLocked()
	return m.epoch
}

func (m *Manager) destroyLocked() {
	if m.key != nil {
		m.key.Destroy()
		m.key = nil
	}
	m.epoch++
}

// Clear destroys the key and clears the marker. It is idempotent.
func (m *Manager) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), markerTimeout)
	defer cancel()

	m.mu.Lock()
	m.destroyLocked()
	epoch := m.epoch
	m.clearMarkerLocked(ctx)
	m.mu.Unlock()

	m.logger.Debug().Uint64("epoch", epoch).Msg("session key cleared")
}

// clearMarkerAt clears the marker unless a key was installed or cleared
// after epoch.
func (m *Manager) clearMarkerAt(ctx context.Context, epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		return
	}
	m.clearMarkerLocked(ctx)
}

// clearMarkerLocked must be called with mu held, like every other marker
// write, so a write from a stale view never lands after a newer one.
func (m *Manager) clearMarkerLocked(ctx context.Context) {
	if err := m.markers.SetMarker(ctx, false); err != nil {
		m.logger.Err(err).Str("func", "*Manager.clearMarkerLocked").Msg("failed to clear key marker")
	}
}

// IsPresent reports whether an unlocked session exists. It reconciles the
// persisted marker with the in-memory key and fails closed: a marker without
// a key is cleared, a key without a marker is destroyed, and a marker that
// cannot be read counts as absent.
//
// The marker is read without holding mu. If a key was installed or cleared
// while it was being read, the reading is stale and only the in-memory key
// is reported.
func (m *Manager) IsPresent() bool {
	ctx, cancel := context.WithTimeout(context.Background(), markerTimeout)
	defer cancel()

	readEpoch := m.Epoch()

	marker, err := m.markers.LoadMarker(ctx)
	if err != nil {
		m.logger.Err(err).Str("func", "*Manager.IsPresent").Msg("failed to read key marker")
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	alive := m.key.Alive()
	if m.epoch != readEpoch {
		return alive
	}

	switch {
	case !marker && alive:
		m.destroyLocked()
		m.logger.Warn().Msg("key marker missing, session key destroyed")
		return false
	case marker && !alive:
		m.clearMarkerLocked(ctx)
		return false
	}

	return marker && alive
}

// Key returns the current key together with the epoch it belongs to.
func (m *Manager) Key() (*crypto.Key, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.key.Alive() {
		return nil, m.epoch, crypto.ErrKeyAbsent
	}
	return m.key, m.epoch, nil
}

// Epoch returns the generation counter.
func (m *Manager) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}
