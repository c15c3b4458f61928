package store

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository is the client's single-row session table.
type SessionRepository interface {
	// SaveSession stores the email and bearer token of a fresh login.
	SaveSession(ctx context.Context, email, token string) error
	// LoadSession returns [ErrLocalSessionNotFound] when nothing is stored.
	LoadSession(ctx context.Context) (models.LocalSession, error)
	// LoadMarker reports the persisted key-present marker.
	LoadMarker(ctx context.Context) (bool, error)
	// SetMarker persists the key-present marker.
	SetMarker(ctx context.Context, present bool) error
	// ClearSession removes token, email and marker.
	ClearSession(ctx context.Context) error
}
