package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with snake_case JSON keys
// and string durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		Driver string `json:"driver"`
		DB     struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Mongo struct {
			URI      string `json:"uri"`
			Database string `json:"database"`
		} `json:"mongo,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		SaltRateLimit  float64  `json:"salt_rate_limit"`
		SaltRateBurst  int      `json:"salt_rate_burst"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
	} `json:"adapter,omitempty"`

	Client struct {
		DBDSN   string `json:"db_dsn"`
		LogFile string `json:"log_file"`
	} `json:"client,omitempty"`

	Workers struct {
		AutoLockAfter       Duration `json:"auto_lock_after"`
		ClipboardClearAfter Duration `json:"clipboard_clear_after"`
		DecryptParallelism  int      `json:"decrypt_parallelism"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
			LogLevel:      jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			Driver: jsonCfg.Storage.Driver,
			DB:     DB{DSN: jsonCfg.Storage.DB.DSN},
			Mongo: Mongo{
				URI:      jsonCfg.Storage.Mongo.URI,
				Database: jsonCfg.Storage.Mongo.Database,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			SaltRateLimit:  jsonCfg.Server.SaltRateLimit,
			SaltRateBurst:  jsonCfg.Server.SaltRateBurst,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RetryCount:     jsonCfg.Adapter.RetryCount,
		},
		Client: Client{
			DBDSN:   jsonCfg.Client.DBDSN,
			LogFile: jsonCfg.Client.LogFile,
		},
		Workers: Workers{
			AutoLockAfter:       time.Duration(jsonCfg.Workers.AutoLockAfter),
			ClipboardClearAfter: time.Duration(jsonCfg.Workers.ClipboardClearAfter),
			DecryptParallelism:  jsonCfg.Workers.DecryptParallelism,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
