package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{App: App{TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

// TestBuild_LaterLayerWins verifies that a non-zero field in a later layer
// overrides the same field of an earlier layer, while zero fields do not.
func TestBuild_LaterLayerWins(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{
		Server:  Server{HTTPAddress: "0.0.0.0:9999"},
		Workers: Workers{DecryptParallelism: 2},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, 2, cfg.Workers.DecryptParallelism)
	assert.Equal(t, 12*time.Second, cfg.Workers.ClipboardClearAfter)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
}

// ── layers ────────────────────────────────────────────────────────────────────

func TestWithDefaults(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withDefaults())
	require.Len(t, b.configs, 1)
	assert.Equal(t, defaultConfig(), b.configs[0])
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("WORKERS_DECRYPT_PARALLELISM", "lots")

	b := newConfigBuilder().withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-token-issuer", "flag-issuer"}))

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-issuer", b.configs[0].App.TokenIssuer)
}

func TestWithFlags_SetsErrorOnBadFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-a", "nowhere"})

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.App.TokenIssuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].App.TokenIssuer)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// TestBuilder_FullChain runs every layer; JSON overrides flags, flags
// override env, env overrides defaults.
func TestBuilder_FullChain(t *testing.T) {
	clearEnvVars(t)

	payload := StructuredJSONConfig{}
	payload.App.LogLevel = "error"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")
	t.Setenv("CONFIG", path)

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-token-issuer", "flag-issuer", "-decrypt-parallelism", "3"}).
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, "error", cfg.App.LogLevel)
	assert.Equal(t, "flag-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 3, cfg.Workers.DecryptParallelism)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
}
