package repository

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/portfolyo/site/database"
	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteSessionRepo(newTestDB(t).Conn)

	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, repo.Create(ctx, &models.Session{
		ID:             "s1",
		Email:          "admin@example.com",
		EncryptedToken: "ciphertext",
		Language:       "tr",
		ExpiresAt:      expires,
	}))

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got.Email)
	assert.Equal(t, "ciphertext", got.EncryptedToken)
	assert.True(t, got.ExpiresAt.Equal(expires), "expires_at round-trips: %v vs %v", got.ExpiresAt, expires)

	require.NoError(t, repo.UpdateLanguage(ctx, "s1", "en"))
	got, err = repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)

	require.NoError(t, repo.DeleteByID(ctx, "s1"))
	_, err = repo.GetByID(ctx, "s1")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	assert.ErrorIs(t, repo.UpdateLanguage(ctx, "missing", "en"), pkg.ErrNotFound)
}

func TestSessionRepo_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteSessionRepo(newTestDB(t).Conn)
	now := time.Now()

	for id, exp := range map[string]time.Time{
		"old":   now.Add(-time.Minute),
		"fresh": now.Add(time.Hour),
	} {
		require.NoError(t, repo.Create(ctx, &models.Session{
			ID: id, Email: "a@b.c", EncryptedToken: "x", Language: "tr", ExpiresAt: exp,
		}))
	}

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetByID(ctx, "fresh")
	assert.NoError(t, err)
}
