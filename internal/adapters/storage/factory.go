package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/database"
	"movie-catalog-api/internal/repositories"
	"movie-catalog-api/internal/repositories/dynamo"
	"movie-catalog-api/internal/repositories/memory"
	"movie-catalog-api/internal/repositories/sqlite"
)

// StoreType represents the type of store implementation
type StoreType string

const (
	StoreTypeDynamoDB StoreType = "dynamodb"
	StoreTypeSQLite   StoreType = "sqlite"
	StoreTypeMemory   StoreType = "memory"
)

// Factory creates repositories.Store instances based on configuration
type Factory struct {
	logger *logrus.Logger
}

// NewFactory creates a new store factory
func NewFactory(logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Factory{logger: logger}
}

// Create creates a store for the given configuration, wrapped with retry
// logic when more than one attempt or a per-call timeout is configured
func (f *Factory) Create(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	storeType := StoreType(strings.ToLower(cfg.Store.Type))

	var store repositories.Store
	var err error

	switch storeType {
	case StoreTypeDynamoDB:
		store, err = f.createDynamoStore(ctx, cfg)
	case StoreTypeSQLite:
		store, err = f.createSQLiteStore(ctx, cfg)
	case StoreTypeMemory:
		store, err = f.createMemoryStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Store.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s store: %w", cfg.Store.Type, err)
	}

	if cfg.Store.RetryAttempts > 1 || cfg.Store.RequestTimeout > 0 {
		retryConfig := DefaultRetryConfig(cfg.Store)
		store = repositories.NewRetryableStore(store, retryConfig)
	}

	f.logger.WithFields(logrus.Fields{
		"store":          storeType,
		"retry_attempts": cfg.Store.RetryAttempts,
	}).Debug("Store created")

	return store, nil
}

// DefaultRetryConfig derives the store retry policy from configuration
func DefaultRetryConfig(cfg config.StoreConfig) *repositories.RetryConfig {
	retryConfig := repositories.DefaultRetryConfig()
	retryConfig.MaxAttempts = cfg.RetryAttempts
	if retryConfig.MaxAttempts < 1 {
		retryConfig.MaxAttempts = 1
	}
	retryConfig.AttemptTimeout = cfg.RequestTimeout
	return retryConfig
}

func (f *Factory) createDynamoStore(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	client, err := dynamo.NewClient(ctx, cfg.Region, cfg.Store.Endpoint)
	if err != nil {
		return nil, err
	}
	return dynamo.NewStore(client, f.logger), nil
}

func (f *Factory) createSQLiteStore(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	connCfg := database.DefaultConnectionConfig()
	connCfg.DatabasePath = cfg.Store.SQLitePath
	connCfg.Logger = f.logger

	cm := database.NewConnectionManager(connCfg)
	if err := cm.Connect(ctx); err != nil {
		return nil, err
	}

	return &closingStore{Store: sqlite.NewStore(cm.GetDB()), closer: cm.Close, health: cm.HealthCheck}, nil
}

func (f *Factory) createMemoryStore(cfg *config.Config) (repositories.Store, error) {
	store := memory.NewStore()
	if cfg.Store.FixturesPath != "" {
		if err := store.LoadFixtures(cfg.Store.FixturesPath); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// closingStore releases an owned connection when the store is closed
type closingStore struct {
	repositories.Store
	closer func() error
	health func(ctx context.Context) error
}

func (c *closingStore) HealthCheck(ctx context.Context) error {
	return c.health(ctx)
}

func (c *closingStore) Close() error {
	if err := c.Store.Close(); err != nil {
		return err
	}
	return c.closer()
}
