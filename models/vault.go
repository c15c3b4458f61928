package models

import (
	"strings"
	"time"
)

// VaultItem is the plaintext form of a credential record. It only ever
// exists on the client. Field order is the canonical serialization order.
type VaultItem struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

// TitleHint returns the lower-cased, trimmed title that is stored next to
// the ciphertext as the only plaintext fragment of a record.
func (v VaultItem) TitleHint() string {
	return TitleHint(v.Title)
}

// TitleHint normalizes a title into its search hint form.
func TitleHint(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Envelope is the sealed form of a VaultItem.
//
// Cipher is base64 of ciphertext followed by the 16-byte GCM tag, IV is
// base64 of exactly 12 nonce bytes.
type Envelope struct {
	Cipher    string `json:"cipher"`
	IV        string `json:"iv"`
	TitleHint string `json:"titleHint,omitempty"`
}

// VaultRecord is a persisted, server-side opaque vault entry.
type VaultRecord struct {
	ID        string    `json:"id" bson:"_id"`
	OwnerID   string    `json:"ownerId" bson:"owner_id"`
	Cipher    string    `json:"cipher" bson:"cipher"`
	IV        string    `json:"iv" bson:"iv"`
	TitleHint string    `json:"titleHint,omitempty" bson:"title_hint,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// TableName returns the name of the database table
// associated with the VaultRecord model.
func (r VaultRecord) TableName() string {
	return "vault_items"
}

// Envelope extracts the sealed payload of the record.
func (r VaultRecord) Envelope() Envelope {
	return Envelope{Cipher: r.Cipher, IV: r.IV, TitleHint: r.TitleHint}
}

// VaultFilter narrows a record listing. OwnerID is mandatory.
type VaultFilter struct {
	OwnerID string

	// HintPrefix, when non-empty, keeps only records whose title hint starts
	// with the normalized prefix.
	HintPrefix string
}

// DecryptedItem is a VaultItem opened on the client together with the
// record metadata needed to update or delete it.
type DecryptedItem struct {
	ID        string
	Item      VaultItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemFailure reports a record that could not be opened during a listing.
type ItemFailure struct {
	ID  string
	Err error
}

// VaultListing is the outcome of listing the vault: the items that opened,
// in server order, plus the records that failed.
type VaultListing struct {
	Items    []DecryptedItem
	Failures []ItemFailure
}
