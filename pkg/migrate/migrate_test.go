package migrate

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/config"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestValidateFSRejectsBadFiles(t *testing.T) {
	bad := fstest.MapFS{
		"m/create.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, ValidateFS(bad, "m"))

	noDown := fstest.MapFS{
		"m/20260101000000_x.sql": {Data: []byte("-- +goose Up\n")},
	}
	assert.Error(t, ValidateFS(noDown, "m"))

	dup := fstest.MapFS{
		"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"m/20260101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, ValidateFS(dup, "m"))

	assert.Error(t, ValidateFS(fstest.MapFS{"m/readme.txt": {}}, "m"))
}

func TestRunUpCreatesCartSnapshots(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_up?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	ctx := context.Background()
	require.NoError(t, Run(ctx, sqlDB, config.StorageSQLite, "up"))
	assert.True(t, conn.Migrator().HasTable("cart_snapshots"))

	require.NoError(t, MigrateToVersion(ctx, sqlDB, config.StorageSQLite, "0"))
	assert.False(t, conn.Migrator().HasTable("cart_snapshots"))
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_bad?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Error(t, Run(context.Background(), sqlDB, config.StorageRedis, "up"))
	assert.Error(t, Run(context.Background(), nil, config.StorageSQLite, "up"))
}
