package service

import (
	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/session"
	"github.com/MKhiriev/go-zk-vault/internal/store"
)

type ClientServices struct {
	AuthService  ClientAuthService
	VaultService ClientVaultService
	Session      *session.Manager
}

func NewClientServices(serverAdapter adapter.ServerAdapter, storages *store.ClientStorages, cfg config.Workers, logger *logger.Logger) *ClientServices {
	keys := session.NewManager(serverAdapter, crypto.NewKeyDerivationService(), storages.SessionRepository, logger)

	return &ClientServices{
		AuthService:  NewClientAuthService(serverAdapter, storages.SessionRepository, keys, logger),
		VaultService: NewClientVaultService(serverAdapter, crypto.NewEnvelopeCodec(), keys, cfg.DecryptParallelism, logger),
		Session:      keys,
	}
}
