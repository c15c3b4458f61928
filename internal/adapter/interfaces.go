// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the vault server.
//
// [ServerAdapter] decouples the client services from HTTP. Only opaque
// envelopes and account credentials cross this boundary; plaintext items
// and keys never do.
//
// Non-2xx responses are mapped by mapHTTPError to a status-class sentinel
// ([ErrUnauthorized], [ErrNotFound], ...) and, where the server message is
// known, to a cause sentinel ([ErrInvalidCredentials], [ErrRecordNotFound],
// ...), so callers can use [errors.Is] without inspecting status codes.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the vault server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every vault request.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// SignUp creates an account. On success the returned token is stored via
	// SetToken and the response carries the account's fresh salt.
	SignUp(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Login authenticates an existing account and stores the returned token.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// FetchSalt returns the base64 salt of the account registered under
	// email. It needs no token.
	FetchSalt(ctx context.Context, email string) (string, error)

	// ListVault returns the owner's records, most recently updated first.
	// A non-empty hintPrefix asks the server to filter by title hint.
	ListVault(ctx context.Context, hintPrefix string) ([]models.VaultRecord, error)

	CreateRecord(ctx context.Context, envelope models.Envelope) (models.VaultRecord, error)

	// UpdateRecord replaces the record's envelope in full.
	UpdateRecord(ctx context.Context, id string, envelope models.Envelope) (models.VaultRecord, error)

	DeleteRecord(ctx context.Context, id string) error

	// Version returns the server's build information.
	Version(ctx context.Context) (models.AppBuildInfo, error)
}
