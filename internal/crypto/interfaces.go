package crypto

import "github.com/MKhiriev/go-zk-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDerivationService turns a master password and the account's public salt
// into the session key. It knows nothing about the network, storage or users.
//
// Derivation is deterministic: the same (password, salt) pair always yields
// the same key, so the client can rebuild it at every login without the
// server ever holding key material.
type KeyDerivationService interface {
	// DeriveKey stretches password with PBKDF2-HMAC-SHA256 over salt.
	// salt must be exactly [SaltSize] bytes; anything else is rejected with
	// [ErrDerivationInput] and no default salt is ever substituted.
	DeriveKey(password string, salt []byte) (*Key, error)

	// DeriveKeyFromEncoded decodes a base64 salt as served by the salt
	// endpoint and then behaves like DeriveKey.
	DeriveKeyFromEncoded(password, encodedSalt string) (*Key, error)
}

// EnvelopeCodec seals and opens individual vault items.
type EnvelopeCodec interface {
	// Encrypt serializes item canonically and seals it with AES-256-GCM under
	// a fresh random nonce. Two calls on the same input never produce the
	// same IV or Cipher.
	Encrypt(item models.VaultItem, key *Key) (models.Envelope, error)

	// Decrypt opens envelope with key. Tag verification is all-or-nothing:
	// on failure no plaintext is returned.
	Decrypt(envelope models.Envelope, key *Key) (models.VaultItem, error)
}
