package config

import "errors"

// Validation errors returned by the role config builders when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates missing token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing listener address, timeout
	// or salt rate limit.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates an unknown driver or missing
	// connection settings for the selected driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive auto-lock, clipboard
	// or parallelism setting.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
