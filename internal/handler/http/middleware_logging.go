package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
)

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		// the query string may carry an email, so only the path is logged
		log.Info().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Str("remote_ip", clientIP(r)).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
