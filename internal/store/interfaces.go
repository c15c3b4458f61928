package store

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts. There is deliberately no operation that
// rewrites an account's salt.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// VaultRepository persists opaque vault records. Every operation is scoped
// to an owner inside the query itself.
type VaultRepository interface {
	ListVaultRecords(ctx context.Context, filter models.VaultFilter) ([]models.VaultRecord, error)
	CreateVaultRecord(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	UpdateVaultRecord(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	DeleteVaultRecord(ctx context.Context, id, ownerID string) error
}

// HealthChecker reports whether the backing database answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
