// Package memory provides an in-memory Store for tests and local development.
package memory

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"

	"movie-catalog-api/internal/models"
	"movie-catalog-api/internal/repositories"
)

// Store is an in-memory implementation of repositories.Store
type Store struct {
	mu     sync.RWMutex
	tables map[string][]models.Record

	// Calls counts store operations, keyed by operation name
	calls map[string]int
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		tables: make(map[string][]models.Record),
		calls:  make(map[string]int),
	}
}

// Put appends copies of the given items to a table
func (s *Store) Put(table string, items ...models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		s.tables[table] = append(s.tables[table], copyRecord(item))
	}
}

// LoadFixtures reads a JSON document mapping table names to item arrays
func (s *Store) LoadFixtures(path string) error {
	fixtures, err := models.ReadFixtures(path)
	if err != nil {
		return err
	}

	for table, items := range fixtures {
		s.Put(table, items...)
	}
	return nil
}

// Calls returns how many times an operation has been invoked
func (s *Store) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

// GetByKey implements repositories.Store.GetByKey
func (s *Store) GetByKey(ctx context.Context, table string, key repositories.Key) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["GetByKey"]++

	for _, item := range s.tables[table] {
		if matchesKey(item, key) {
			return copyRecord(item), nil
		}
	}

	return nil, repositories.NewRepositoryError("GetByKey", table, key, repositories.ErrNotFound, false)
}

// Query implements repositories.Store.Query. Indexes are not modelled, the
// condition alone decides which items match.
func (s *Store) Query(ctx context.Context, q *repositories.Query) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q == nil || q.Key.Attribute == "" {
		return nil, repositories.ErrInvalidQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Query"]++

	items := []models.Record{}
	for _, item := range s.tables[q.Table] {
		if !matchesKey(item, q.Key) {
			continue
		}
		if q.Condition != nil && !hasPrefix(item, q.Condition) {
			continue
		}
		items = append(items, copyRecord(item))
	}

	return items, nil
}

// Close implements repositories.Store.Close
func (s *Store) Close() error {
	return nil
}

func matchesKey(item models.Record, key repositories.Key) bool {
	n, ok := toInt(item[key.Attribute])
	return ok && n == key.Value
}

func hasPrefix(item models.Record, cond *repositories.PrefixCondition) bool {
	v, ok := item[cond.Attribute].(string)
	return ok && strings.HasPrefix(v, cond.Prefix)
}

// toInt converts the numeric representations produced by JSON decoding and
// Go literals into an int
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func copyRecord(item models.Record) models.Record {
	out := make(models.Record, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
