package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, path string) *FileUserRepository {
	t.Helper()
	repo, err := NewFileUserRepository(path, zerolog.NewNopLogger())
	require.NoError(t, err)
	return repo.(*FileUserRepository)
}

func TestNewFileUserRepository_EmptyPath(t *testing.T) {
	_, err := NewFileUserRepository("", zerolog.NewNopLogger())
	require.Error(t, err)
}

func TestLoad_MissingFileCreatesEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "users.json")
	repo := newRepo(t, path)

	users, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	repo := newRepo(t, path)
	require.NoError(t, repo.Init(ctx))

	created := time.Date(2024, 5, 1, 12, 0, 0, 123e6, time.UTC)
	users := []models.User{
		*models.NewUser("1", "alice", "a@x.io", "h1", created),
		*models.NewUser("2", "bob", "b@x.io", "h2", created.Add(time.Second)),
	}
	require.NoError(t, repo.Save(ctx, users))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	repo := newRepo(t, path)

	_, err := repo.Load(context.Background())
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data), "corrupt data must not be overwritten")
}

func TestLoad_LegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	legacy := `[
  {
    "id": "1700000000000",
    "username": "alice",
    "email": "alice@example.com",
    "password": "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3k8P6yZ5GZ2Z8X4p1k8M1a2",
    "createdAt": "2023-11-14T22:13:20.000Z"
  }
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	users, err := newRepo(t, path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice@example.com", users[0].Email)
	assert.Equal(t, "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3k8P6yZ5GZ2Z8X4p1k8M1a2", users[0].PasswordHash)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := newRepo(t, filepath.Join(t.TempDir(), "users.json"))

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, repo.Save(ctx, nil), context.Canceled)
}
