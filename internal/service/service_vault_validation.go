package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/validators"
	"github.com/MKhiriev/go-zk-vault/models"
)

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validation.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}

// VaultValidationService rejects malformed envelopes and ids before they
// reach the wrapped VaultService.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *VaultValidationService) List(ctx context.Context, hintPrefix string) ([]models.VaultRecord, error) {
	return v.inner.List(ctx, models.TitleHint(hintPrefix))
}

func (v *VaultValidationService) Create(ctx context.Context, envelope models.Envelope) (models.VaultRecord, error) {
	if err := v.validator.Validate(ctx, envelope); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Create(ctx, envelope)
}

func (v *VaultValidationService) Update(ctx context.Context, id string, envelope models.Envelope) (models.VaultRecord, error) {
	if err := v.validator.Validate(ctx, id); err != nil {
		return models.VaultRecord{}, err
	}
	if err := v.validator.Validate(ctx, envelope); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Update(ctx, id, envelope)
}

func (v *VaultValidationService) Delete(ctx context.Context, id string) error {
	if err := v.validator.Validate(ctx, id); err != nil {
		return err
	}

	return v.inner.Delete(ctx, id)
}

func (v *VaultValidationService) Wrap(wrapped VaultService) VaultService {
	v.inner = wrapped
	return v
}
