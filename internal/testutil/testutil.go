package testutil

import (
	"context"
	"testing"

	randomdata "github.com/Pallinder/go-randomdata"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"journal/internal/database"
	"journal/internal/models"
)

// MemoryDSN returns a DSN for a fresh, private in-memory SQLite database.
func MemoryDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared"
}

// OpenStore opens a migrated in-memory SQLite store that is closed when the
// test ends.
func OpenStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		DSN:    MemoryDSN(),
		Silent: true,
	})
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(&models.User{}, &models.Note{}), "migrate test store")
	return store
}

// SeedUser inserts a user directly, bypassing repositories.
func SeedUser(t *testing.T, store *database.Store, username string) *models.User {
	t.Helper()
	user := models.User{
		FirstName: "Pepe",
		LastName:  "Ruiz",
		Username:  username,
		Age:       24,
		Password:  "12345678",
		IsActive:  true,
	}
	require.NoError(t, store.DB().Create(&user).Error, "seed user %s", username)
	return &user
}

// SeedNote inserts a note owned by userID with a random description.
func SeedNote(t *testing.T, store *database.Store, userID uint, title string) *models.Note {
	t.Helper()
	note := models.Note{
		Title:       title,
		Description: "Notas sobre " + randomdata.SillyName(),
		UserID:      userID,
	}
	require.NoError(t, store.DB().Create(&note).Error, "seed note %s", title)
	return &note
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
