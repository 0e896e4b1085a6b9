package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkeep/internal/config"
	"upkeep/internal/domain"
	"upkeep/internal/repository"
)

func TestOpenVendorStore_SQLite(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "vendors.db"),
	}}

	store, closeFn, err := repository.OpenVendorStore(cfg)
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	rec := domain.NewParsedVendorRecord("Acme")
	require.NoError(t, store.CreateVendor(context.Background(), &rec))
	_, total, err := store.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestOpenVendorStore_UnknownDriver(t *testing.T) {
	_, _, err := repository.OpenVendorStore(&config.Config{Store: config.StoreConfig{Driver: "mongo"}})
	assert.Error(t, err)
}
