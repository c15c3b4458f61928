// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
)

// countingWorker records how many times Run was entered and blocks until
// cancellation like a real worker.
type countingWorker struct {
	runs atomic.Int32
}

func (c *countingWorker) Run(ctx context.Context) {
	c.runs.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &countingWorker{}, &countingWorker{}, &countingWorker{}
	ws := NewWorkers(w1, nil, w2, w3)
	require.Equal(t, 3, ws.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1 && w3.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewWorkers().Run(ctx)
	(&Workers{}).Run(ctx)
}

func TestTicker_RunsImmediatelyAndPeriodically(t *testing.T) {
	var calls atomic.Int32
	tk := NewTicker("test", 5*time.Millisecond, func(context.Context) { calls.Add(1) }, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tk.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done

	stopped := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load(), "job must not run after cancel")
}

func TestTicker_DisabledWaitsForCancel(t *testing.T) {
	var calls atomic.Int32
	tk := NewTicker("off", 0, func(context.Context) { calls.Add(1) }, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	tk.Run(ctx)
	assert.Zero(t, calls.Load())
}

// fakeLocker is a Locker with a settable present flag.
type fakeLocker struct {
	mu      sync.Mutex
	present bool
	clears  int
}

func (f *fakeLocker) IsPresent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.present
}

func (f *fakeLocker) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.present = false
	f.clears++
}

func TestAutoLock_Check(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		present  bool
		idle     time.Duration
		wantLock bool
	}{
		{name: "locks after idle window", present: true, idle: 5 * time.Minute, wantLock: true},
		{name: "keeps active session", present: true, idle: time.Minute},
		{name: "nothing to lock", present: false, idle: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locker := &fakeLocker{present: tt.present}
			activity := &Activity{}
			activity.Touch(start)

			var notified int
			a := NewAutoLock(locker, activity, 5*time.Minute, func() { notified++ }, logger.Nop())
			a.now = func() time.Time { return start.Add(tt.idle) }

			assert.Equal(t, tt.wantLock, a.check())
			if tt.wantLock {
				assert.Equal(t, 1, locker.clears)
				assert.Equal(t, 1, notified)
				assert.False(t, locker.IsPresent())
				return
			}
			assert.Zero(t, locker.clears)
			assert.Zero(t, notified)
		})
	}
}

func TestAutoLock_Run(t *testing.T) {
	locker := &fakeLocker{present: true}
	activity := &Activity{}
	activity.Touch(time.Now().Add(-time.Hour))

	locked := make(chan struct{}, 1)
	a := NewAutoLock(locker, activity, 40*time.Millisecond, func() { locked <- struct{}{} }, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.Run(ctx)

	select {
	case <-locked:
	case <-time.After(time.Second):
		t.Fatal("session was not locked")
	}
	assert.False(t, locker.IsPresent())
}

func TestActivity_IdleFor(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := &Activity{}

	assert.Zero(t, a.IdleFor(now), "first check starts the clock")
	assert.Equal(t, time.Minute, a.IdleFor(now.Add(time.Minute)))

	a.Touch(now.Add(2 * time.Minute))
	assert.Equal(t, 30*time.Second, a.IdleFor(now.Add(2*time.Minute+30*time.Second)))
}

func TestAutoLock_CheckInterval(t *testing.T) {
	assert.Zero(t, (&AutoLock{}).checkInterval())
	assert.Equal(t, time.Second, (&AutoLock{after: 5 * time.Minute}).checkInterval())
	assert.Equal(t, 10*time.Millisecond, (&AutoLock{after: 20 * time.Millisecond}).checkInterval())
	assert.Equal(t, 100*time.Millisecond, (&AutoLock{after: 400 * time.Millisecond}).checkInterval())
}
