// Package grpc exposes the standard grpc.health.v1 service of the vault
// server. Its status follows the storage backend: SERVING while pings
// succeed, NOT_SERVING otherwise.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
)

// VaultServiceName is the name reported next to the overall "" status.
const VaultServiceName = "zkvault.Vault"

// Handler is the root gRPC transport handler.
type Handler struct {
	health  *health.Server
	checker store.HealthChecker

	logger *logger.Logger
}

// NewHandler constructs a [Handler] whose status starts as NOT_SERVING until
// the first successful probe.
func NewHandler(checker store.HealthChecker, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health:  health.NewServer(),
		checker: checker,
		logger:  logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Probe pings storage once and publishes the result.
func (h *Handler) Probe(ctx context.Context) {
	if err := h.checker.Ping(ctx); err != nil {
		h.logger.Err(err).Str("func", "*Handler.Probe").Msg("storage ping failed")
		h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	h.setStatus(healthpb.HealthCheckResponse_SERVING)
}

// Shutdown reports NOT_SERVING and ignores later probes.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(VaultServiceName, status)
}
