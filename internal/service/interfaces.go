package service

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns account creation and the login credential check. The
// login password is verified against a bcrypt hash; it has no relation to
// the encryption key, which never reaches the server.
type AuthService interface {
	SignUp(ctx context.Context, creds models.Credentials) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SaltRegistry serves the public per-account derivation salt.
type SaltRegistry interface {
	SaltFor(ctx context.Context, email string) (string, error)
}

// VaultService stores opaque envelopes for the owner found in ctx. The owner
// is never read from the request payload.
type VaultService interface {
	List(ctx context.Context, hintPrefix string) ([]models.VaultRecord, error)
	Create(ctx context.Context, envelope models.Envelope) (models.VaultRecord, error)
	Update(ctx context.Context, id string, envelope models.Envelope) (models.VaultRecord, error)
	Delete(ctx context.Context, id string) error
}

type AppInfoService interface {
	GetAppBuildInfo(ctx context.Context) models.AppBuildInfo
}
