package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

func TestAppInfoService_GetAppBuildInfo(t *testing.T) {
	info := models.NewAppBuildInfo("v1.2.3", "2026-10-01", "abc123")
	svc := NewAppInfoService(info, logger.Nop())

	got := svc.GetAppBuildInfo(context.Background())

	assert.Equal(t, "v1.2.3", got.BuildVersion())
	assert.Equal(t, "2026-10-01", got.BuildDate())
	assert.Equal(t, "abc123", got.BuildCommit())
}

func TestAppInfoService_DefaultsToNA(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("", "", ""), logger.Nop())

	got := svc.GetAppBuildInfo(context.Background())

	assert.Equal(t, "N/A", got.BuildVersion())
	assert.Equal(t, "N/A", got.BuildDate())
	assert.Equal(t, "N/A", got.BuildCommit())
}
