package main

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/config"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/logger"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
)

func exerciseKV(t *testing.T, kv storage.KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "elex_cart:s1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "elex_cart:s1", []byte(`[]`)))
	got, err := kv.Get(ctx, "elex_cart:s1")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestOpenBackendMemory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "memory"}}
	b, err := openBackend(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.Empty(t, b.pingers)
	exerciseKV(t, b.kv)
}

func TestOpenBackendFile(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "file", FileDir: filepath.Join(t.TempDir(), "carts")}}
	b, err := openBackend(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	exerciseKV(t, b.kv)
}

func TestOpenBackendSQLiteRunsMigrations(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: "sqlite"},
		DB: config.DBConfig{
			DSN:         fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
			AutoMigrate: true,
		},
	}
	b, err := openBackend(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer func() {
		for _, c := range b.closers {
			_ = c.Close()
		}
	}()

	require.Contains(t, b.pingers, "sqlite")
	require.NoError(t, b.pingers["sqlite"].Ping(context.Background()))
	exerciseKV(t, b.kv)
}

func TestOpenBackendUnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "etcd"}}
	_, err := openBackend(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
