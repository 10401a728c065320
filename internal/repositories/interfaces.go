package repositories

import (
	"context"

	"movie-catalog-api/internal/models"
)

// Key identifies an item by a single integer attribute
type Key struct {
	Attribute string
	Value     int
}

// PrefixCondition restricts a query to items whose attribute starts with Prefix
type PrefixCondition struct {
	Attribute string
	Prefix    string
}

// Query selects the items of a table (or one of its indexes) sharing a key value
type Query struct {
	Table     string
	Index     string // empty for the base table
	Key       Key
	Condition *PrefixCondition
}

// Store is the read-only data store the handlers depend on
type Store interface {
	// GetByKey returns the item with the given key, or ErrNotFound
	GetByKey(ctx context.Context, table string, key Key) (models.Record, error)

	// Query returns every item matching the query; an empty result is not an error
	Query(ctx context.Context, q *Query) ([]models.Record, error)

	// Close releases any resources held by the store
	Close() error
}

// HealthChecker is implemented by stores that can verify their connection
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CheckHealth runs the store's health check when it has one
func CheckHealth(ctx context.Context, store Store) error {
	if hc, ok := store.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
