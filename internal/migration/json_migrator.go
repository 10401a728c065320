// Package migration imports JSON fixture documents into the SQLite item store.
// It is development tooling for seeding a local database; the lookup
// handlers never write.
package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/models"
)

// JSONMigrator copies a fixtures file, a JSON object mapping table names to
// arrays of items, into the items table
type JSONMigrator struct {
	db       *sql.DB
	logger   *logrus.Logger
	jsonPath string
}

// NewJSONMigrator creates a new JSON migrator. db may be nil when only
// reading the fixtures.
func NewJSONMigrator(db *sql.DB, jsonPath string, logger *logrus.Logger) *JSONMigrator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &JSONMigrator{
		db:       db,
		logger:   logger,
		jsonPath: jsonPath,
	}
}

// MigrationResult reports how many items were written per table
type MigrationResult struct {
	Tables   map[string]int
	Warnings []string
}

// Total returns the number of items written
func (r *MigrationResult) Total() int {
	total := 0
	for _, n := range r.Tables {
		total += n
	}
	return total
}

// ReadFixtures decodes the fixtures file, keeping numbers exact
func (m *JSONMigrator) ReadFixtures() (models.Fixtures, error) {
	return models.ReadFixtures(m.jsonPath)
}

// MigrateFromJSON replaces the rows of every table named in the fixtures
// inside a single transaction
func (m *JSONMigrator) MigrateFromJSON(ctx context.Context) (*MigrationResult, error) {
	fixtures, err := m.ReadFixtures()
	if err != nil {
		return nil, err
	}

	if err := MigrateSchema(m.db, m.logger); err != nil {
		return nil, err
	}

	result := &MigrationResult{Tables: make(map[string]int, len(fixtures))}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range sortedTables(fixtures) {
		items := fixtures[table]
		if len(items) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("table %s has no items", table))
		}

		n, err := m.migrateTable(ctx, tx, table, items)
		if err != nil {
			return result, fmt.Errorf("table %s migration failed: %w", table, err)
		}
		result.Tables[table] = n
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit transaction: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"tables": result.Tables,
		"items":  result.Total(),
	}).Info("JSON to SQLite migration completed successfully")

	return result, nil
}

func (m *JSONMigrator) migrateTable(ctx context.Context, tx *sql.Tx, table string, items []models.Record) (int, error) {
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE table_name = ?`, table); err != nil {
		return 0, fmt.Errorf("failed to clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items (table_name, doc) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		doc, err := json.Marshal(item)
		if err != nil {
			return i, fmt.Errorf("failed to encode item %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, table, string(doc)); err != nil {
			return i, fmt.Errorf("failed to insert item %d: %w", i, err)
		}
	}

	m.logger.WithFields(logrus.Fields{
		"table": table,
		"items": len(items),
	}).Debug("Table migrated")

	return len(items), nil
}

// ValidateMigration checks that every table in the fixtures has as many rows
// as the fixtures list
func (m *JSONMigrator) ValidateMigration(ctx context.Context) error {
	fixtures, err := m.ReadFixtures()
	if err != nil {
		return err
	}

	for _, table := range sortedTables(fixtures) {
		var count int
		err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE table_name = ?`, table).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}
		if count != len(fixtures[table]) {
			return fmt.Errorf("table %s has %d items, expected %d", table, count, len(fixtures[table]))
		}
	}

	m.logger.WithField("tables", len(fixtures)).Info("Migration validation completed")
	return nil
}

func sortedTables(fixtures models.Fixtures) []string {
	tables := make([]string, 0, len(fixtures))
	for table := range fixtures {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}
