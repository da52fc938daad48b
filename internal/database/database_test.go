package database_test

import (
	"context"
	"testing"

	"journal/internal/database"
	"journal/internal/models"
	"journal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(context.Background(), database.Config{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestStore_MigrateAndClose(t *testing.T) {
	store, err := database.Open(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		DSN:    testutil.MemoryDSN(),
		Silent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, database.DriverSQLite, store.Driver())

	require.NoError(t, store.Migrate(&models.User{}, &models.Note{}))
	assert.True(t, store.DB().Migrator().HasTable("users"))
	assert.True(t, store.DB().Migrator().HasTable("notes"))
	assert.True(t, store.DB().Migrator().HasIndex(&models.User{}, models.UsernameUniqueIndex))

	assert.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.Close())
	assert.Error(t, store.Ping(context.Background()))
}
