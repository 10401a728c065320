package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"movie-catalog-api/internal/models"
	"movie-catalog-api/internal/repositories"
)

// Store implements repositories.Store over the items table, where every row
// holds one item of a logical table as a JSON object
type Store struct {
	db *sql.DB
}

// NewStore creates a Store on an open database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetByKey implements repositories.Store.GetByKey
func (s *Store) GetByKey(ctx context.Context, table string, key repositories.Key) (models.Record, error) {
	const query = `SELECT doc FROM items WHERE table_name = ? AND json_extract(doc, ?) = ? LIMIT 1`

	var doc string
	err := s.db.QueryRowContext(ctx, query, table, jsonPath(key.Attribute), key.Value).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, repositories.NewRepositoryError("GetByKey", table, key, repositories.ErrNotFound, false)
	}
	if err != nil {
		return nil, repositories.NewRepositoryError("GetByKey", table, key, err, false)
	}

	item, err := decodeDoc(doc)
	if err != nil {
		return nil, repositories.NewRepositoryError("GetByKey", table, key, err, false)
	}
	return item, nil
}

// Query implements repositories.Store.Query. Index names are ignored.
func (s *Store) Query(ctx context.Context, q *repositories.Query) ([]models.Record, error) {
	if q == nil || q.Key.Attribute == "" {
		return nil, repositories.ErrInvalidQuery
	}

	var sb strings.Builder
	sb.WriteString(`SELECT doc FROM items WHERE table_name = ? AND json_extract(doc, ?) = ?`)
	args := []interface{}{q.Table, jsonPath(q.Key.Attribute), q.Key.Value}

	if q.Condition != nil {
		sb.WriteString(` AND substr(json_extract(doc, ?), 1, length(?)) = ?`)
		args = append(args, jsonPath(q.Condition.Attribute), q.Condition.Prefix, q.Condition.Prefix)
	}
	sb.WriteString(` ORDER BY rowid`)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, repositories.NewRepositoryError("Query", q.Table, q.Key, err, false)
	}
	defer rows.Close()

	items := []models.Record{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, repositories.NewRepositoryError("Query", q.Table, q.Key, err, false)
		}
		item, err := decodeDoc(doc)
		if err != nil {
			return nil, repositories.NewRepositoryError("Query", q.Table, q.Key, err, false)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("Query", q.Table, q.Key, err, false)
	}

	return items, nil
}

// Close implements repositories.Store.Close. The connection is owned by
// the caller that opened it.
func (s *Store) Close() error {
	return nil
}

// jsonPath quotes an attribute name as a SQLite JSON path
func jsonPath(attribute string) string {
	return `$."` + strings.ReplaceAll(attribute, `"`, `\"`) + `"`
}

func decodeDoc(doc string) (models.Record, error) {
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()

	var item models.Record
	if err := dec.Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	return item, nil
}
