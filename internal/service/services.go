package service

import (
	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/models"
)

type Services struct {
	AuthService    AuthService
	SaltRegistry   SaltRegistry
	VaultService   VaultService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Services {
	vault := NewVaultValidationService().Wrap(NewVaultService(storages.VaultRepository, logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		SaltRegistry:   NewSaltRegistry(storages.UserRepository, logger),
		VaultService:   vault,
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}
}
