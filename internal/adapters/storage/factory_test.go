package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/database"
	"movie-catalog-api/internal/migration"
	"movie-catalog-api/internal/repositories"
	"movie-catalog-api/internal/repositories/memory"
)

func TestFactory_CreateMemory(t *testing.T) {
	fixtures := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(fixtures, []byte(`{"Movies":[{"id":1,"title":"A"}]}`), 0o600))

	cfg := &config.Config{Store: config.StoreConfig{Type: "memory", FixturesPath: fixtures, RetryAttempts: 1}}
	store, err := NewFactory(nil).Create(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &memory.Store{}, store)

	movie, err := store.GetByKey(context.Background(), "Movies", repositories.Key{Attribute: "id", Value: 1})
	require.NoError(t, err)
	assert.Equal(t, "A", movie["title"])
}

func TestFactory_CreateMemoryBadFixtures(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Type: "memory", FixturesPath: filepath.Join(t.TempDir(), "missing.json")}}
	_, err := NewFactory(nil).Create(context.Background(), cfg)
	assert.Error(t, err)
}

func TestFactory_CreateSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "movies.db")

	connCfg := database.DefaultConnectionConfig()
	connCfg.DatabasePath = path
	connCfg.ReadOnly = false
	cm := database.NewConnectionManager(connCfg)
	require.NoError(t, cm.Connect(ctx))
	require.NoError(t, migration.MigrateSchema(cm.GetDB(), nil))
	_, err := cm.GetDB().ExecContext(ctx, `INSERT INTO items (table_name, doc) VALUES ('Movies', '{"id":5,"title":"E"}')`)
	require.NoError(t, err)
	require.NoError(t, cm.Close())

	cfg := &config.Config{Store: config.StoreConfig{Type: "SQLite", SQLitePath: path, RetryAttempts: 1}}
	store, err := NewFactory(nil).Create(ctx, cfg)
	require.NoError(t, err)

	movie, err := store.GetByKey(ctx, "Movies", repositories.Key{Attribute: "id", Value: 5})
	require.NoError(t, err)
	assert.Equal(t, "E", movie["title"])
	assert.NoError(t, repositories.CheckHealth(ctx, store))
	assert.NoError(t, store.Close())
}

func TestFactory_Unsupported(t *testing.T) {
	_, err := NewFactory(nil).Create(context.Background(), &config.Config{Store: config.StoreConfig{Type: "redis"}})
	assert.Error(t, err)

	_, err = NewFactory(nil).Create(context.Background(), nil)
	assert.Error(t, err)
}

func TestFactory_RetryWrapping(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Type: "memory", RetryAttempts: 3, RequestTimeout: time.Second}}
	store, err := NewFactory(nil).Create(context.Background(), cfg)
	require.NoError(t, err)

	assert.IsType(t, &repositories.RetryableStore{}, store)
}

func TestDefaultRetryConfig(t *testing.T) {
	rc := DefaultRetryConfig(config.StoreConfig{RetryAttempts: 0, RequestTimeout: 2 * time.Second})
	assert.Equal(t, 1, rc.MaxAttempts)
	assert.Equal(t, 2*time.Second, rc.AttemptTimeout)

	rc = DefaultRetryConfig(config.StoreConfig{RetryAttempts: 4})
	assert.Equal(t, 4, rc.MaxAttempts)
}
