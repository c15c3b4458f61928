// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/validators"
)

// ── trace id ─────────────────────────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{name: "reuses client trace id", incoming: "my-trace-id", reuse: true},
		{name: "generates when absent", incoming: ""},
		{name: "replaces oversized id", incoming: strings.Repeat("x", maxTraceIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			if tt.reuse {
				assert.Equal(t, tt.incoming, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

// ── response writer ──────────────────────────────────────────────────────────

func TestResponseWriter(t *testing.T) {
	t.Run("implicit ok", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		n, err := w.Write([]byte("hello"))
		require.NoError(t, err)

		assert.Equal(t, 5, n)
		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, 5, w.size)
	})

	t.Run("first status wins", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("a"))
		_, _ = w.Write([]byte("bc"))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, http.StatusCreated, w.status)
		assert.Equal(t, 3, w.size)
	})
}

func TestWithLogging_PassesThrough(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/crypto/salt?email=a@b.c", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

// ── gzip ─────────────────────────────────────────────────────────────────────

func gzipped(t *testing.T, s string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func TestWithGZip(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	})

	t.Run("compresses when accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
		req.Header.Set("Accept-Encoding", "gzip")
		rr := httptest.NewRecorder()

		withGZip(echo).ServeHTTP(rr, req)

		require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
		zr, err := gzip.NewReader(rr.Body)
		require.NoError(t, err)
		plain, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(plain))
	})

	t.Run("plain when not accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
		rr := httptest.NewRecorder()

		withGZip(echo).ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, "plain", rr.Body.String())
	})

	t.Run("inflates gzip request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", gzipped(t, "inflated"))
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()

		withGZip(echo).ServeHTTP(rr, req)

		assert.Equal(t, "inflated", rr.Body.String())
	})

	t.Run("rejects broken gzip request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()

		withGZip(echo).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no content stays empty", func(t *testing.T) {
		noContent := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rr := httptest.NewRecorder()

		withGZip(noContent).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Zero(t, rr.Body.Len())
	})
}

// ── rate limiter ─────────────────────────────────────────────────────────────

func TestIPRateLimiter(t *testing.T) {
	l := newIPRateLimiter(rate.Every(time.Second), 2, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, l.allow("a", now))
	assert.True(t, l.allow("a", now))
	assert.False(t, l.allow("a", now))
	assert.True(t, l.allow("b", now))

	// one token refills after a second
	assert.True(t, l.allow("a", now.Add(time.Second)))

	assert.Equal(t, 0, l.sweep(now.Add(30*time.Second)))
	assert.Equal(t, 2, l.sweep(now.Add(2*time.Minute)))
	assert.Equal(t, 0, l.size())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "forwarded first hop", remoteAddr: "10.0.0.1:1", xff: "203.0.113.9, 10.0.0.1", want: "203.0.113.9"},
		{name: "blank forwarded", remoteAddr: "192.0.2.1:5555", xff: " , ", want: "192.0.2.1"},
		{name: "no port", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}

// ── error mapping ────────────────────────────────────────────────────────────

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{fmt.Errorf("wrap: %w", store.ErrEmailAlreadyExists), http.StatusConflict, "email already registered"},
		{fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrEmptyCipher), http.StatusBadRequest, "cipher is required"},
		{service.ErrInvalidDataProvided, http.StatusBadRequest, "invalid data provided"},
		{store.ErrVaultRecordNotFound, http.StatusNotFound, "vault record not found"},
		{ErrTooManyRequests, http.StatusTooManyRequests, "too many requests"},
		{errors.New("pq: something exploded"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			status, msg := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
