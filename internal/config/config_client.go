package config

import (
	"fmt"
	"strings"
)

// ClientConfig is the configuration view used by cmd/client.
type ClientConfig struct {
	// App carries the version and log level; token settings stay server-side.
	App App
	// Adapter contains the server base URL, timeout and retry count.
	Adapter Adapter
	// Client contains the local session database and log file.
	Client Client
	// Workers contains the auto-lock, clipboard and decrypt settings.
	Workers Workers
	// ShowVersion asks the client to print build info and exit.
	ShowVersion bool
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	address := cfg.Adapter.HTTPAddress
	if address != "" && !strings.Contains(address, "://") {
		address = "http://" + address
	}

	return &ClientConfig{
		App: App{
			Version:  cfg.App.Version,
			LogLevel: cfg.App.LogLevel,
		},
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RetryCount:     cfg.Adapter.RetryCount,
		},
		Client:      cfg.Client,
		Workers:     cfg.Workers,
		ShowVersion: cfg.ShowVersion,
	}
}
