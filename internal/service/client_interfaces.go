package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/models"
)

// KeySession is the session-key surface the client services depend on.
// *session.Manager implements it.
type KeySession interface {
	Acquire(ctx context.Context, email, password string) error
	AcquireWithSalt(ctx context.Context, password, encodedSalt string) error
	Clear()
	IsPresent() bool
	Key() (*crypto.Key, uint64, error)
	Epoch() uint64
}

// ClientAuthService manages the account side of a client session: the
// bearer token, the persisted session row and the session key.
type ClientAuthService interface {
	// SignUp registers a new account and unlocks the vault with the salt the
	// server just created.
	SignUp(ctx context.Context, creds models.Credentials) error

	// Login authenticates against the server, then fetches the account salt
	// and derives the session key.
	Login(ctx context.Context, creds models.Credentials) error

	// Restore loads the persisted session so the adapter can reuse its token.
	// It returns store.ErrLocalSessionNotFound when nobody is logged in.
	Restore(ctx context.Context) (models.LocalSession, error)

	// Unlock re-authenticates the persisted account with password after a
	// lock or restart.
	Unlock(ctx context.Context, password string) error

	// Lock destroys the session key but keeps the token and email.
	Lock()

	// Logout destroys the key and forgets the token and email.
	Logout(ctx context.Context) error

	// IsUnlocked reports whether a usable session key is installed.
	IsUnlocked() bool
}

// ClientVaultService encrypts, decrypts and exchanges vault records with the
// server. Plaintext never leaves it except towards the UI.
type ClientVaultService interface {
	// List fetches every record and decrypts them concurrently. Items keep
	// the server order; records that fail to open are reported in
	// Failures. If the session key changed while the call ran the result is
	// discarded and crypto.ErrKeyAbsent returned.
	List(ctx context.Context) (models.VaultListing, error)

	// ListByTitle is List narrowed server-side to titles starting with
	// prefix.
	ListByTitle(ctx context.Context, prefix string) (models.VaultListing, error)

	Create(ctx context.Context, item models.VaultItem) (models.DecryptedItem, error)

	// Update re-encrypts item in full and replaces the stored record.
	Update(ctx context.Context, id string, item models.VaultItem) (models.DecryptedItem, error)

	Delete(ctx context.Context, id string) error

	// Search filters decrypted items by a case-insensitive substring of the
	// title, username or URL. An empty query returns every item.
	Search(items []models.DecryptedItem, query string) []models.DecryptedItem
}
