package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/tui"
	"github.com/MKhiriev/go-zk-vault/models"
)

type App struct {
	storages *store.ClientStorages
	ui       *tui.TUI
	logger   *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Client, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	services := service.NewClientServices(serverAdapter, storages, cfg.Workers, log)

	return &App{
		storages: storages,
		ui:       tui.New(services, serverAdapter, cfg.Workers, buildInfo, log),
		logger:   log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("client started")
	defer a.logger.Info().Msg("client stopped")

	return a.ui.Run(ctx)
}

func (a *App) Close() error {
	return a.storages.Close()
}
