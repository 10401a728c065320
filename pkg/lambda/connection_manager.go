package lambda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/services"
	"movie-catalog-api/pkg/server"
)

// ContainerFactory builds the service container on first use
type ContainerFactory func(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*server.Container, error)

// ConnectionManager keeps one service container, and with it one store
// client, alive across invocations of a warm execution environment
type ConnectionManager struct {
	container *server.Container
	mu        sync.RWMutex
	config    *config.Config
	logger    *logrus.Logger
	factory   ContainerFactory
}

// NewConnectionManager creates a connection manager. The container is not
// built until GetContainer is first called.
func NewConnectionManager(cfg *config.Config, logger *logrus.Logger) *ConnectionManager {
	return NewConnectionManagerWithFactory(cfg, logger, server.NewContainer)
}

// NewConnectionManagerWithFactory creates a connection manager that builds
// its container with factory
func NewConnectionManagerWithFactory(cfg *config.Config, logger *logrus.Logger, factory ContainerFactory) *ConnectionManager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ConnectionManager{
		config:  cfg,
		logger:  logger,
		factory: factory,
	}
}

// GetContainer returns the service container, initializing if necessary.
// A failed initialization is retried on the next call.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.RLock()
	if cm.container != nil {
		container := cm.container
		cm.mu.RUnlock()
		return container, nil
	}
	cm.mu.RUnlock()

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		start := time.Now()
		container, err := cm.factory(ctx, cm.config, cm.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize container: %w", err)
		}
		cm.container = container
		cm.logger.WithField("duration", time.Since(start).String()).Info("Container initialized")
	}

	return cm.container, nil
}

// MovieService resolves the service for movie lookups with cast read from
// the cast table
func (cm *ConnectionManager) MovieService(ctx context.Context) (services.MovieService, error) {
	container, err := cm.GetContainer(ctx)
	if err != nil {
		return nil, err
	}
	return container.MovieService, nil
}

// CastMemberService resolves the service for movie lookups with filtered
// cast members
func (cm *ConnectionManager) CastMemberService(ctx context.Context) (services.MovieService, error) {
	container, err := cm.GetContainer(ctx)
	if err != nil {
		return nil, err
	}
	return container.CastMemberService, nil
}

// Initialized reports whether a container has been built
func (cm *ConnectionManager) Initialized() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.container != nil
}

// Cleanup releases the container. The runtime calls it on SIGTERM before the
// execution environment shuts down.
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}

	return nil
}

// Shutdown is registered as the SIGTERM callback. It releases the container
// if one was built and logs the outcome.
func (cm *ConnectionManager) Shutdown() {
	if !cm.Initialized() {
		cm.logger.Debug("Shutdown with no container")
		return
	}
	if err := cm.Cleanup(); err != nil {
		cm.logger.WithError(err).Error("Failed to release container")
		return
	}
	cm.logger.Info("Container released")
}
