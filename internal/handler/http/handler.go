package http

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
)

// limiterTTL is how long an idle client IP keeps its token bucket.
const limiterTTL = 10 * time.Minute

type Handler struct {
	services *service.Services

	saltLimiter    *ipRateLimiter
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		saltLimiter:    newIPRateLimiter(rate.Limit(cfg.SaltRateLimit), cfg.SaltRateBurst, limiterTTL),
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}

// SweepRateLimiters drops token buckets of clients idle for longer than the
// limiter TTL and returns how many were removed. The server runs it
// periodically.
func (h *Handler) SweepRateLimiters() int {
	return h.saltLimiter.sweep(time.Now())
}
