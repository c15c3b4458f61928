package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-zk-vault/internal/client"
	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	memguard.CatchInterrupt()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		memguard.SafeExit(1)
	}
	memguard.SafeExit(0)
}

func run() error {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	if cfg.ShowVersion {
		printBuildInfo(buildInfo)
		return nil
	}

	log := logger.NewClientLogger("zk-vault-client", cfg.Client.LogFile)
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Msg("unknown log level, keeping default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	var app client.Client
	app, err = client.NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Err(err).Msg("init client app error")
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Err(closeErr).Msg("close client app")
		}
	}()

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("client run error")
		return err
	}
	return nil
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
