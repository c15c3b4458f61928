// Package server wires and runs the vault server's transports.
//
// It owns the HTTP API and gRPC health listeners together with the
// background workers tied to them (salt limiter sweep, storage health
// probe), starts them, waits for a stop signal and shuts everything down
// gracefully.
package server
