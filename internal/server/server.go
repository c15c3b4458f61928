package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/handler"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/workers"
)

const (
	shutdownTimeout    = 10 * time.Second
	limiterSweepPeriod = time.Minute
	healthProbePeriod  = 5 * time.Second
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewServer builds the enabled transports and their background workers. The
// gRPC listener is bound here so a busy port fails startup early.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	var jobs []workers.Worker

	if handlers.HTTP != nil && cfg.HTTPAddress != "" {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)

		httpHandler := handlers.HTTP
		jobs = append(jobs, workers.NewTicker("salt-limiter-sweep", limiterSweepPeriod, func(context.Context) {
			if removed := httpHandler.SweepRateLimiters(); removed > 0 {
				logger.Debug().Int("removed", removed).Msg("idle rate limiter entries swept")
			}
		}, logger))
	}
	if handlers.GRPC != nil && cfg.GRPCAddress != "" {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.gRPCServer = grpcSrv
		jobs = append(jobs, workers.NewTicker("health-probe", healthProbePeriod, handlers.GRPC.Probe, logger))
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	servers.workers = workers.NewWorkers(jobs...)

	return servers, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown(ctx context.Context) {
	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown(ctx)
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown(ctx)
	}
}

func (s *server) run() error {
	// check if any server was created
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersToRun
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.serve(ctx)
}

// serve runs everything until ctx is cancelled and then shuts down.
func (s *server) serve(ctx context.Context) error {
	var wg sync.WaitGroup

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.workers.Run(workersCtx)
	}()

	// launch all created servers
	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.httpServer.RunServer()
		}()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching GRPC server")
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.gRPCServer.RunServer()
		}()
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.Shutdown(shutdownCtx)
	stopWorkers()
	wg.Wait()

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
