package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/models"
)

type vaultService struct {
	vaultRepository store.VaultRepository
	ids             *utils.UUIDGenerator
	now             func() time.Time

	logger *logger.Logger
}

func NewVaultService(vaultRepository store.VaultRepository, logger *logger.Logger) VaultService {
	return &vaultService{
		vaultRepository: vaultRepository,
		ids:             utils.NewUUIDGenerator(),
		now:             func() time.Time { return time.Now().UTC() },
		logger:          logger,
	}
}

func (v *vaultService) List(ctx context.Context, hintPrefix string) ([]models.VaultRecord, error) {
	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserIDInContext
	}

	return v.vaultRepository.ListVaultRecords(ctx, models.VaultFilter{OwnerID: ownerID, HintPrefix: hintPrefix})
}

// Create assigns a new UUIDv7 id and both timestamps; the envelope is stored
// verbatim.
func (v *vaultService) Create(ctx context.Context, envelope models.Envelope) (models.VaultRecord, error) {
	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.VaultRecord{}, ErrNoUserIDInContext
	}

	now := v.now()
	record := models.VaultRecord{
		ID:        v.ids.Generate(),
		OwnerID:   ownerID,
		Cipher:    envelope.Cipher,
		IV:        envelope.IV,
		TitleHint: envelope.TitleHint,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := v.vaultRepository.CreateVaultRecord(ctx, record)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("error creating vault record: %w", err)
	}

	logger.FromContext(ctx).Info().Str("owner_id", ownerID).Str("id", created.ID).Msg("vault record created")
	return created, nil
}

// Update replaces the envelope of a record the caller owns. A record owned by
// someone else is reported exactly like a missing one.
func (v *vaultService) Update(ctx context.Context, id string, envelope models.Envelope) (models.VaultRecord, error) {
	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.VaultRecord{}, ErrNoUserIDInContext
	}

	record := models.VaultRecord{
		ID:        id,
		OwnerID:   ownerID,
		Cipher:    envelope.Cipher,
		IV:        envelope.IV,
		TitleHint: envelope.TitleHint,
		UpdatedAt: v.now(),
	}

	updated, err := v.vaultRepository.UpdateVaultRecord(ctx, record)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("error updating vault record: %w", err)
	}

	return updated, nil
}

func (v *vaultService) Delete(ctx context.Context, id string) error {
	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNoUserIDInContext
	}

	if err := v.vaultRepository.DeleteVaultRecord(ctx, id, ownerID); err != nil {
		return fmt.Errorf("error deleting vault record: %w", err)
	}

	return nil
}
