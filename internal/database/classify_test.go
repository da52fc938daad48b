package database_test

import (
	"errors"
	"fmt"
	"testing"

	"journal/internal/database"
	"journal/internal/models"
	"journal/internal/testutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(username string) *models.User {
	return &models.User{FirstName: "Pepe", LastName: "Ruiz", Username: username, Age: 24, Password: "12345678", IsActive: true}
}

func TestClassify_SQLiteUniqueResolvesIndexName(t *testing.T) {
	store := testutil.OpenStore(t)

	require.NoError(t, store.DB().Create(seedUser("pep01")).Error)
	err := store.Classify(store.DB().Create(seedUser("pep01")).Error)

	var cerr *database.ConstraintError
	require.True(t, errors.As(err, &cerr), "expected ConstraintError, got %v", err)
	assert.Equal(t, database.UniqueViolation, cerr.Kind)
	assert.Equal(t, models.UsernameUniqueIndex, cerr.Constraint)
}

func TestClassify_SQLiteCheck(t *testing.T) {
	store := testutil.OpenStore(t)

	u := seedUser("pep01")
	u.Age = 100
	err := store.Classify(store.DB().Create(u).Error)

	var cerr *database.ConstraintError
	require.True(t, errors.As(err, &cerr), "expected ConstraintError, got %v", err)
	assert.Equal(t, database.CheckViolation, cerr.Kind)
	assert.Equal(t, "age_range", cerr.Constraint)
}

func TestClassify_SQLiteForeignKey(t *testing.T) {
	store := testutil.OpenStore(t)

	err := store.Classify(store.DB().Create(&models.Note{Title: "Nota", Description: "Sin usuario", UserID: 9}).Error)

	var cerr *database.ConstraintError
	require.True(t, errors.As(err, &cerr), "expected ConstraintError, got %v", err)
	assert.Equal(t, database.ForeignKeyViolation, cerr.Kind)
}

func TestClassify_Postgres(t *testing.T) {
	store := testutil.OpenStore(t)

	tests := []struct {
		name       string
		code       string
		constraint string
		kind       database.ViolationKind
	}{
		{"unique", "23505", models.UsernameUniqueIndex, database.UniqueViolation},
		{"foreign key", "23503", "fk_users_notes", database.ForeignKeyViolation},
		{"check", "23514", "age_range", database.CheckViolation},
		{"not null", "23502", "", database.NotNullViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, ConstraintName: tt.constraint}
			err := store.Classify(fmt.Errorf("insert: %w", pgErr))

			var cerr *database.ConstraintError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.kind, cerr.Kind)
			assert.Equal(t, tt.constraint, cerr.Constraint)

			// The driver error is still reachable.
			var unwrapped *pgconn.PgError
			assert.True(t, errors.As(err, &unwrapped))
		})
	}
}

func TestClassify_LeavesOtherErrorsAlone(t *testing.T) {
	store := testutil.OpenStore(t)

	assert.Nil(t, store.Classify(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, store.Classify(plain))

	serialization := &pgconn.PgError{Code: "40001"}
	assert.Same(t, error(serialization), store.Classify(serialization))
}
