package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/adapters/storage"
	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/repositories"
	"movie-catalog-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *logrus.Logger
	Store             repositories.Store
	MovieService      services.MovieService
	CastMemberService services.MovieService

	// Internal dependencies
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	store, err := storage.NewFactory(logger).Create(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return NewContainerWithStore(cfg, store, logger)
}

// NewContainerWithStore builds the container around an existing store
func NewContainerWithStore(cfg *config.Config, store repositories.Store, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	serviceContainer, err := services.NewServiceContainer(store, cfg.Tables, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:            cfg,
		Logger:            logger,
		Store:             store,
		MovieService:      serviceContainer.MovieService,
		CastMemberService: serviceContainer.CastMemberService,
		services:          serviceContainer,
	}, nil
}

// HealthCheck verifies the store connection
func (c *Container) HealthCheck(ctx context.Context) error {
	return repositories.CheckHealth(ctx, c.Store)
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.services != nil {
		if err := c.services.Close(); err != nil {
			return fmt.Errorf("failed to close services: %w", err)
		}
	}
	return nil
}
