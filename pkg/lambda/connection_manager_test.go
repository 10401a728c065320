package lambda

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/repositories/memory"
	"movie-catalog-api/pkg/server"
)

func testConfig() *config.Config {
	return &config.Config{
		Tables: config.TablesConfig{Movies: "Movies", MovieCast: "MovieCast", RoleIndex: "roleIx"},
		Store:  config.StoreConfig{Type: "memory", RetryAttempts: 1},
	}
}

func TestConnectionManager_ReusesContainer(t *testing.T) {
	builds := 0
	factory := func(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*server.Container, error) {
		builds++
		return server.NewContainerWithStore(cfg, memory.NewStore(), logger)
	}

	cm := NewConnectionManagerWithFactory(testConfig(), quietLogger(), factory)
	assert.False(t, cm.Initialized())

	first, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	second, err := cm.GetContainer(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
	assert.True(t, cm.Initialized())

	require.NoError(t, cm.Cleanup())
	assert.False(t, cm.Initialized())
}

func TestConnectionManager_RetriesFailedInit(t *testing.T) {
	attempts := 0
	factory := func(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*server.Container, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("credentials unavailable")
		}
		return server.NewContainerWithStore(cfg, memory.NewStore(), logger)
	}

	cm := NewConnectionManagerWithFactory(testConfig(), quietLogger(), factory)

	_, err := cm.GetContainer(context.Background())
	assert.Error(t, err)

	container, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, container.MovieService)
}

func TestConnectionManager_DefaultFactory(t *testing.T) {
	cm := NewConnectionManager(testConfig(), quietLogger())

	container, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, container.Store)
	require.NoError(t, cm.Cleanup())
}

func TestConnectionManager_ServiceResolvers(t *testing.T) {
	cm := NewConnectionManager(testConfig(), quietLogger())

	movies, err := cm.MovieService(context.Background())
	require.NoError(t, err)
	castMembers, err := cm.CastMemberService(context.Background())
	require.NoError(t, err)

	container, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	assert.Same(t, container.MovieService, movies)
	assert.Same(t, container.CastMemberService, castMembers)

	failing := NewConnectionManagerWithFactory(testConfig(), quietLogger(),
		func(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*server.Container, error) {
			return nil, errors.New("failed to ping SQLite database")
		})
	_, err = failing.MovieService(context.Background())
	assert.ErrorContains(t, err, "failed to initialize container")
	_, err = failing.CastMemberService(context.Background())
	assert.Error(t, err)
}

func TestConnectionManager_Shutdown(t *testing.T) {
	store := memory.NewStore()
	factory := func(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*server.Container, error) {
		return server.NewContainerWithStore(cfg, store, logger)
	}
	cm := NewConnectionManagerWithFactory(testConfig(), quietLogger(), factory)

	cm.Shutdown()
	assert.False(t, cm.Initialized())

	_, err := cm.GetContainer(context.Background())
	require.NoError(t, err)

	cm.Shutdown()
	assert.False(t, cm.Initialized())
}
