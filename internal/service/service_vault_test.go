// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/mock"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/internal/validators"
	"github.com/MKhiriev/go-zk-vault/models"
)

const (
	testOwnerID  = "0190a6d2-0000-7000-8000-000000000001"
	testRecordID = "0190a6d2-0000-7000-8000-0000000000aa"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ownerCtx() context.Context {
	return context.WithValue(context.Background(), utils.UserIDCtxKey, testOwnerID)
}

func testEnvelope() models.Envelope {
	return models.Envelope{
		Cipher:    base64.StdEncoding.EncodeToString(make([]byte, 48)),
		IV:        base64.StdEncoding.EncodeToString(make([]byte, 12)),
		TitleHint: "bank",
	}
}

func newTestVaultService(t *testing.T) (VaultService, *mock.MockVaultRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVaultRepository(ctrl)

	inner := NewVaultService(repo, logger.Nop()).(*vaultService)
	inner.now = func() time.Time { return fixedNow }

	return NewVaultValidationService().Wrap(inner), repo
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestVaultService_List_ScopesToOwner(t *testing.T) {
	svc, repo := newTestVaultService(t)
	ctx := ownerCtx()
	records := []models.VaultRecord{{ID: "b"}, {ID: "a"}}

	repo.EXPECT().ListVaultRecords(ctx, models.VaultFilter{OwnerID: testOwnerID}).Return(records, nil)

	got, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestVaultService_List_NormalizesHint(t *testing.T) {
	svc, repo := newTestVaultService(t)
	ctx := ownerCtx()

	repo.EXPECT().ListVaultRecords(ctx, models.VaultFilter{OwnerID: testOwnerID, HintPrefix: "ba"}).
		Return([]models.VaultRecord{}, nil)

	_, err := svc.List(ctx, "  BA ")
	require.NoError(t, err)
}

func TestVaultService_NoOwnerInContext(t *testing.T) {
	svc, _ := newTestVaultService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	assert.ErrorIs(t, err, ErrNoUserIDInContext)

	_, err = svc.Create(ctx, testEnvelope())
	assert.ErrorIs(t, err, ErrNoUserIDInContext)

	_, err = svc.Update(ctx, testRecordID, testEnvelope())
	assert.ErrorIs(t, err, ErrNoUserIDInContext)

	assert.ErrorIs(t, svc.Delete(ctx, testRecordID), ErrNoUserIDInContext)
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestVaultService_Create_AssignsIDAndTimestamps(t *testing.T) {
	svc, repo := newTestVaultService(t)
	ctx := ownerCtx()
	env := testEnvelope()

	repo.EXPECT().CreateVaultRecord(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.VaultRecord) (models.VaultRecord, error) {
			assert.True(t, utils.IsValidUUID(r.ID))
			assert.Equal(t, testOwnerID, r.OwnerID)
			assert.Equal(t, env.Cipher, r.Cipher)
			assert.Equal(t, env.IV, r.IV)
			assert.Equal(t, "bank", r.TitleHint)
			assert.Equal(t, fixedNow, r.CreatedAt)
			assert.Equal(t, fixedNow, r.UpdatedAt)
			return r, nil
		})

	rec, err := svc.Create(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, testOwnerID, rec.OwnerID)
}

func TestVaultService_Create_RejectsMalformedEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *models.Envelope)
		wantErr error
	}{
		{name: "missing cipher", mutate: func(e *models.Envelope) { e.Cipher = "" }, wantErr: validators.ErrEmptyCipher},
		{name: "missing iv", mutate: func(e *models.Envelope) { e.IV = "" }, wantErr: validators.ErrEmptyIV},
		{name: "short iv", mutate: func(e *models.Envelope) {
			e.IV = base64.StdEncoding.EncodeToString(make([]byte, 8))
		}, wantErr: validators.ErrInvalidEnvelope},
		{name: "short cipher", mutate: func(e *models.Envelope) {
			e.Cipher = base64.StdEncoding.EncodeToString(make([]byte, 4))
		}, wantErr: validators.ErrInvalidEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestVaultService(t)
			env := testEnvelope()
			tt.mutate(&env)

			_, err := svc.Create(ownerCtx(), env)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestVaultService_Update_ReplacesEnvelope(t *testing.T) {
	svc, repo := newTestVaultService(t)
	ctx := ownerCtx()
	env := testEnvelope()

	repo.EXPECT().UpdateVaultRecord(ctx, models.VaultRecord{
		ID:        testRecordID,
		OwnerID:   testOwnerID,
		Cipher:    env.Cipher,
		IV:        env.IV,
		TitleHint: env.TitleHint,
		UpdatedAt: fixedNow,
	}).Return(models.VaultRecord{ID: testRecordID, OwnerID: testOwnerID}, nil)

	rec, err := svc.Update(ctx, testRecordID, env)
	require.NoError(t, err)
	assert.Equal(t, testRecordID, rec.ID)
}

func TestVaultService_Update_ForeignRecordIsNotFound(t *testing.T) {
	svc, repo := newTestVaultService(t)
	ctx := ownerCtx()

	repo.EXPECT().UpdateVaultRecord(ctx, gomock.Any()).Return(models.VaultRecord{}, store.ErrVaultRecordNotFound)

	_, err := svc.Update(ctx, testRecordID, testEnvelope())
	assert.ErrorIs(t, err, store.ErrVaultRecordNotFound)
}

func TestVaultService_Update_InvalidID(t *testing.T) {
	svc, _ := newTestVaultService(t)

	_, err := svc.Update(ownerCtx(), "not-a-uuid", testEnvelope())
	assert.ErrorIs(t, err, validators.ErrInvalidRecordID)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestVaultService_Delete(t *testing.T) {
	svc, repo := newTestVaultService(t)
	ctx := ownerCtx()

	repo.EXPECT().DeleteVaultRecord(ctx, testRecordID, testOwnerID).Return(nil)
	assert.NoError(t, svc.Delete(ctx, testRecordID))
}

func TestVaultService_Delete_NotFound(t *testing.T) {
	svc, repo := newTestVaultService(t)
	ctx := ownerCtx()

	repo.EXPECT().DeleteVaultRecord(ctx, testRecordID, testOwnerID).Return(store.ErrVaultRecordNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, testRecordID), store.ErrVaultRecordNotFound)
}

func TestVaultService_Delete_InvalidID(t *testing.T) {
	svc, _ := newTestVaultService(t)
	assert.ErrorIs(t, svc.Delete(ownerCtx(), "42"), validators.ErrInvalidRecordID)
}
