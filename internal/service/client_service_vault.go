// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

// DefaultDecryptParallelism is used when the configured bound is not
// positive.
const DefaultDecryptParallelism = 8

type clientVaultService struct {
	adapter     adapter.ServerAdapter
	codec       crypto.EnvelopeCodec
	keys        KeySession
	parallelism int

	logger *logger.Logger
}

func NewClientVaultService(serverAdapter adapter.ServerAdapter, codec crypto.EnvelopeCodec, keys KeySession, parallelism int, logger *logger.Logger) ClientVaultService {
	if parallelism <= 0 {
		parallelism = DefaultDecryptParallelism
	}

	return &clientVaultService{
		adapter:     serverAdapter,
		codec:       codec,
		keys:        keys,
		parallelism: parallelism,
		logger:      logger,
	}
}

func (v *clientVaultService) List(ctx context.Context) (models.VaultListing, error) {
	return v.list(ctx, "")
}

func (v *clientVaultService) ListByTitle(ctx context.Context, prefix string) (models.VaultListing, error) {
	return v.list(ctx, models.TitleHint(prefix))
}

func (v *clientVaultService) list(ctx context.Context, hintPrefix string) (models.VaultListing, error) {
	key, epoch, err := v.keys.Key()
	if err != nil {
		return models.VaultListing{}, err
	}

	records, err := v.adapter.ListVault(ctx, hintPrefix)
	if err != nil {
		return models.VaultListing{}, fmt.Errorf("list vault: %w", err)
	}

	items := make([]models.DecryptedItem, len(records))
	failures := make([]error, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.parallelism)
	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			item, err := v.codec.Decrypt(models.Envelope{Cipher: record.Cipher, IV: record.IV, TitleHint: record.TitleHint}, key)
			if err != nil {
				failures[i] = err
				return nil
			}

			items[i] = models.DecryptedItem{
				ID:        record.ID,
				Item:      item,
				CreatedAt: record.CreatedAt,
				UpdatedAt: record.UpdatedAt,
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return models.VaultListing{}, err
	}

	if v.keys.Epoch() != epoch {
		return models.VaultListing{}, fmt.Errorf("session changed while listing: %w", crypto.ErrKeyAbsent)
	}

	listing := models.VaultListing{Items: make([]models.DecryptedItem, 0, len(records))}
	for i, record := range records {
		if failures[i] != nil {
			v.logger.Warn().Err(failures[i]).Str("record_id", record.ID).Msg("vault record could not be opened")
			listing.Failures = append(listing.Failures, models.ItemFailure{ID: record.ID, Err: failures[i]})
			continue
		}
		listing.Items = append(listing.Items, items[i])
	}

	v.logger.Debug().Int("items", len(listing.Items)).Int("failures", len(listing.Failures)).Msg("vault listed")
	return listing, nil
}

func (v *clientVaultService) Create(ctx context.Context, item models.VaultItem) (models.DecryptedItem, error) {
	envelope, err := v.seal(item)
	if err != nil {
		return models.DecryptedItem{}, err
	}

	record, err := v.adapter.CreateRecord(ctx, envelope)
	if err != nil {
		return models.DecryptedItem{}, fmt.Errorf("create record: %w", err)
	}

	return decrypted(record, item), nil
}

func (v *clientVaultService) Update(ctx context.Context, id string, item models.VaultItem) (models.DecryptedItem, error) {
	envelope, err := v.seal(item)
	if err != nil {
		return models.DecryptedItem{}, err
	}

	record, err := v.adapter.UpdateRecord(ctx, id, envelope)
	if err != nil {
		return models.DecryptedItem{}, fmt.Errorf("update record %s: %w", id, err)
	}

	return decrypted(record, item), nil
}

func (v *clientVaultService) Delete(ctx context.Context, id string) error {
	if _, _, err := v.keys.Key(); err != nil {
		return err
	}

	if err := v.adapter.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

func (v *clientVaultService) seal(item models.VaultItem) (models.Envelope, error) {
	key, _, err := v.keys.Key()
	if err != nil {
		return models.Envelope{}, err
	}
	return v.codec.Encrypt(item, key)
}

func decrypted(record models.VaultRecord, item models.VaultItem) models.DecryptedItem {
	return models.DecryptedItem{
		ID:        record.ID,
		Item:      item,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func (v *clientVaultService) Search(items []models.DecryptedItem, query string) []models.DecryptedItem {
	query = strings.ToLower(strings.TrimSpace(query))

	found := make([]models.DecryptedItem, 0, len(items))
	for _, it := range items {
		if query == "" ||
			strings.Contains(strings.ToLower(it.Item.Title), query) ||
			strings.Contains(strings.ToLower(it.Item.Username), query) ||
			strings.Contains(strings.ToLower(it.Item.URL), query) {
			found = append(found, it)
		}
	}
	return found
}
