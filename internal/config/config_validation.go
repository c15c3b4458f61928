// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the server view before startup. The first failing group
// is reported.
func (cfg *ServerConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 ||
		cfg.Server.SaltRateLimit <= 0 || cfg.Server.SaltRateBurst <= 0 {
		return ErrInvalidServerConfigs
	}

	switch cfg.Storage.Driver {
	case DriverPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: postgres driver needs a DSN", ErrInvalidStorageConfigs)
		}
	case DriverMongo:
		if cfg.Storage.Mongo.URI == "" || cfg.Storage.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo driver needs a URI and a database", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	return nil
}

// validate checks the client view. The session marker must survive a
// restart, so an in-memory SQLite DSN is rejected.
func (cfg *ClientConfig) validate() error {
	if cfg.Client.DBDSN == "" || strings.Contains(cfg.Client.DBDSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.RetryCount < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.AutoLockAfter <= 0 || cfg.Workers.ClipboardClearAfter <= 0 || cfg.Workers.DecryptParallelism <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
