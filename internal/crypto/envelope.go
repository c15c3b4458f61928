package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-zk-vault/models"
	"github.com/awnumar/memguard"
)

const (
	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length in bytes.
	TagSize = 16
)

type envelopeCodec struct {
	random io.Reader
}

// NewEnvelopeCodec returns the AES-256-GCM codec reading nonces from
// crypto/rand.
func NewEnvelopeCodec() EnvelopeCodec {
	return &envelopeCodec{random: rand.Reader}
}

func (c *envelopeCodec) Encrypt(item models.VaultItem, key *Key) (models.Envelope, error) {
	if !key.Alive() {
		return models.Envelope{}, ErrKeyAbsent
	}

	plaintext, err := json.Marshal(item)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("%w: encode item", ErrSealFailure)
	}
	defer memguard.WipeBytes(plaintext)

	nonce := make([]byte, NonceSize)
	if _, err = io.ReadFull(c.random, nonce); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: read nonce: %v", ErrSealFailure, err)
	}

	var sealed []byte
	err = key.use(func(raw []byte) error {
		aead, err := newGCM(raw)
		if err != nil {
			return err
		}
		sealed = aead.Seal(nil, nonce, plaintext, nil)
		return nil
	})
	if err != nil {
		return models.Envelope{}, err
	}

	return models.Envelope{
		Cipher:    base64.StdEncoding.EncodeToString(sealed),
		IV:        base64.StdEncoding.EncodeToString(nonce),
		TitleHint: item.TitleHint(),
	}, nil
}

func (c *envelopeCodec) Decrypt(envelope models.Envelope, key *Key) (models.VaultItem, error) {
	if !key.Alive() {
		return models.VaultItem{}, ErrKeyAbsent
	}

	nonce, sealed, err := decodeEnvelope(envelope)
	if err != nil {
		return models.VaultItem{}, err
	}

	var plaintext []byte
	err = key.use(func(raw []byte) error {
		aead, err := newGCM(raw)
		if err != nil {
			return err
		}
		plaintext, err = aead.Open(nil, nonce, sealed, nil)
		if err != nil {
			return ErrTagVerification
		}
		return nil
	})
	if err != nil {
		return models.VaultItem{}, err
	}
	defer memguard.WipeBytes(plaintext)

	return decodeItem(plaintext)
}

// ValidateEnvelope checks the wire format of an envelope without any key:
// both fields must be standard base64, iv must decode to [NonceSize] bytes
// and cipher to at least [TagSize] bytes.
func ValidateEnvelope(envelope models.Envelope) error {
	_, _, err := decodeEnvelope(envelope)
	return err
}

func decodeEnvelope(envelope models.Envelope) (nonce, sealed []byte, err error) {
	nonce, err = base64.StdEncoding.DecodeString(envelope.IV)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: iv is not valid base64", ErrEnvelopeFormat)
	}
	if len(nonce) != NonceSize {
		return nil, nil, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrEnvelopeFormat, NonceSize, len(nonce))
	}

	sealed, err = base64.StdEncoding.DecodeString(envelope.Cipher)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cipher is not valid base64", ErrEnvelopeFormat)
	}
	if len(sealed) < TagSize {
		return nil, nil, fmt.Errorf("%w: cipher must be at least %d bytes, got %d", ErrEnvelopeFormat, TagSize, len(sealed))
	}

	return nonce, sealed, nil
}

func newGCM(raw []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSealFailure, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSealFailure, err)
	}

	return aead, nil
}

// wireItem mirrors models.VaultItem with pointers so a missing field can be
// told apart from an empty one.
type wireItem struct {
	Title    *string `json:"title"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	URL      *string `json:"url"`
	Notes    *string `json:"notes"`
}

func decodeItem(plaintext []byte) (models.VaultItem, error) {
	dec := json.NewDecoder(bytes.NewReader(plaintext))
	dec.DisallowUnknownFields()

	var w wireItem
	if err := dec.Decode(&w); err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: not a vault item", ErrMalformedPlaintext)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return models.VaultItem{}, fmt.Errorf("%w: trailing data", ErrMalformedPlaintext)
	}
	if w.Title == nil || w.Username == nil || w.Password == nil || w.URL == nil || w.Notes == nil {
		return models.VaultItem{}, fmt.Errorf("%w: missing fields", ErrMalformedPlaintext)
	}

	return models.VaultItem{
		Title:    *w.Title,
		Username: *w.Username,
		Password: *w.Password,
		URL:      *w.URL,
		Notes:    *w.Notes,
	}, nil
}
