package config

import "fmt"

// ServerConfig is the configuration view used by cmd/server.
type ServerConfig struct {
	App     App
	Storage Storage
	Server  Server
}

// GetServerConfig loads the merged configuration and validates the fields
// the vault server needs.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	return &ServerConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
	}
}
