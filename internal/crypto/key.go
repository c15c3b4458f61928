package crypto

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
)

// Key is the 256-bit session key. The raw bytes live sealed in a memguard
// enclave and are only unsealed into a locked buffer for the duration of a
// single cipher operation inside this package.
//
// Key deliberately has no accessor for its bytes and no string or
// serialization methods. Its zero value and a nil *Key are both absent keys.
type Key struct {
	mu      sync.RWMutex
	enclave *memguard.Enclave
}

// newKey seals raw into a fresh enclave. raw is wiped in every case.
func newKey(raw []byte) (*Key, error) {
	if len(raw) != KeySize {
		memguard.WipeBytes(raw)
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrDerivationInput, KeySize, len(raw))
	}

	return &Key{enclave: memguard.NewEnclave(raw)}, nil
}

// Alive reports whether the key can still be used.
func (k *Key) Alive() bool {
	if k == nil {
		return false
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.enclave != nil
}

// Destroy drops the enclave so no further operation can use the key.
// Operations already holding the key finish first. Safe to call repeatedly.
func (k *Key) Destroy() {
	if k == nil {
		return
	}

	k.mu.Lock()
	k.enclave = nil
	k.mu.Unlock()
}

// use unseals the key into a locked buffer, runs fn and destroys the buffer.
// fn must not retain raw.
func (k *Key) use(fn func(raw []byte) error) error {
	if k == nil {
		return ErrKeyAbsent
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.enclave == nil {
		return ErrKeyAbsent
	}

	buf, err := k.enclave.Open()
	if err != nil {
		return fmt.Errorf("%w: unseal key: %v", ErrKeyAbsent, err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}
