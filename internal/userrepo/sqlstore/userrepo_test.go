package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/pkg/databases/sqldb"
	"github.com/haguru/sakura/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	client := sqldb.NewSQLiteClient()
	require.NoError(t, client.Connect(ctx, filepath.Join(t.TempDir(), "users.db")))
	t.Cleanup(func() { _ = client.Disconnect(ctx) })
	return client.DB()
}

func newRepo(t *testing.T) *SQLUserRepository {
	t.Helper()
	repo, err := NewSQLUserRepository(openSQLite(t), zerolog.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, repo.Init(context.Background()))
	return repo.(*SQLUserRepository)
}

func TestNewSQLUserRepository_NilDB(t *testing.T) {
	_, err := NewSQLUserRepository(nil, zerolog.NewNopLogger())
	require.Error(t, err)
}

func TestInit_Idempotent(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.Init(context.Background()))
}

func TestLoad_EmptyTable(t *testing.T) {
	users, err := newRepo(t).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestSave_ReplacesCollectionInOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 123e6, time.UTC)

	first := []models.User{
		*models.NewUser("3", "carol", "c@x.io", "h3", created),
		*models.NewUser("1", "alice", "a@x.io", "h1", created.Add(time.Second)),
		*models.NewUser("2", "bob", "b@x.io", "h2", created.Add(2*time.Second)),
	}
	require.NoError(t, repo.Save(ctx, first))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := []models.User{first[1]}
	second[0].Username = "alice2"
	require.NoError(t, repo.Save(ctx, second))

	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	require.NoError(t, repo.Save(ctx, nil))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSave_FailureRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	original := []models.User{*models.NewUser("1", "alice", "a@x.io", "h1", time.Now().UTC())}
	require.NoError(t, repo.Save(ctx, original))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, repo.Save(canceled, []models.User{}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLoad_MissingTable(t *testing.T) {
	repo, err := NewSQLUserRepository(openSQLite(t), zerolog.NewNopLogger())
	require.NoError(t, err)

	_, err = repo.Load(context.Background())
	require.Error(t, err)
}
