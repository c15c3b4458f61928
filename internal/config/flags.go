package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args into a config layer. Unset flags leave zero values
// so that lower layers stay in effect.
//
// Flags:
//
//	-a                   server address in format [host]:[port]
//	-grpc-address        gRPC health server address in format [host]:[port]
//	-storage-driver      postgres | mongo
//	-d                   PostgreSQL DSN
//	-mongo-uri           MongoDB connection URI
//	-mongo-db            MongoDB database name
//	-c/-config           json file path with configs
//	-token-sign-key      token signing key
//	-token-issuer        token issuer name
//	-token-duration      token duration (e.g., "1h", "30m")
//	-request-timeout     server request timeout (e.g., "30s")
//	-salt-rate-limit     salt lookups per second per client IP
//	-salt-rate-burst     salt lookup burst per client IP
//	-log-level           zerolog level
//	-server              server base URL used by the client
//	-adapter-timeout     client request timeout
//	-adapter-retries     client retry count
//	-client-db           client SQLite file
//	-log-file            client log file
//	-auto-lock           client idle time before the key is cleared
//	-clipboard-clear     clipboard auto-clear delay
//	-decrypt-parallelism concurrent decrypt limit
//	-v                   print build info and exit
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet("go-zk-vault", flag.ContinueOnError)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&cfg.Storage.Driver, "storage-driver", "", "Storage driver: postgres or mongo")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Mongo.URI, "mongo-uri", "", "MongoDB URI")
	fs.StringVar(&cfg.Storage.Mongo.Database, "mongo-db", "", "MongoDB database")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Float64Var(&cfg.Server.SaltRateLimit, "salt-rate-limit", 0, "Salt lookups per second per client")
	fs.IntVar(&cfg.Server.SaltRateBurst, "salt-rate-burst", 0, "Salt lookup burst per client")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "server", "", "Server base URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "adapter-timeout", 0, "Client request timeout")
	fs.IntVar(&cfg.Adapter.RetryCount, "adapter-retries", 0, "Client retry count")
	fs.StringVar(&cfg.Client.DBDSN, "client-db", "", "Client SQLite file")
	fs.StringVar(&cfg.Client.LogFile, "log-file", "", "Client log file")
	fs.DurationVar(&cfg.Workers.AutoLockAfter, "auto-lock", 0, "Idle time before the vault locks")
	fs.DurationVar(&cfg.Workers.ClipboardClearAfter, "clipboard-clear", 0, "Clipboard auto-clear delay")
	fs.IntVar(&cfg.Workers.DecryptParallelism, "decrypt-parallelism", 0, "Concurrent decrypt limit")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Print build info and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcServerAddress.String()

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

var _ flag.Value = (*NetAddress)(nil)
