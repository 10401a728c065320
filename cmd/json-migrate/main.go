// Command json-migrate seeds a local SQLite database from a fixtures file.
// It is for development only; deployed handlers read from DynamoDB.
package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/database"
	"movie-catalog-api/internal/migration"
)

func main() {
	var (
		dbPath   = flag.String("db", "./data/movies.db", "Database file path")
		jsonPath = flag.String("json", "./data/fixtures.json", "Fixtures file path")
		action   = flag.String("action", "migrate", "Action: migrate, validate, check")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logger
	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	absJSONPath, err := filepath.Abs(*jsonPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute JSON path")
	}

	logger.WithFields(logrus.Fields{
		"db_path":   absDBPath,
		"json_path": absJSONPath,
		"action":    *action,
	}).Info("Starting JSON migration tool")

	ctx := context.Background()

	switch *action {
	case "check":
		if err := checkFixtures(absJSONPath, logger); err != nil {
			logger.WithError(err).Fatal("Failed to check fixtures")
		}
	case "migrate":
		if err := runMigration(ctx, absDBPath, absJSONPath, logger); err != nil {
			logger.WithError(err).Fatal("Migration failed")
		}
	case "validate":
		if err := validateMigration(ctx, absDBPath, absJSONPath, logger); err != nil {
			logger.WithError(err).Fatal("Validation failed")
		}
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: check, migrate, validate")
	}

	logger.Info("JSON migration tool completed successfully")
}

func checkFixtures(jsonPath string, logger *logrus.Logger) error {
	fixtures, err := migration.NewJSONMigrator(nil, jsonPath, logger).ReadFixtures()
	if err != nil {
		return err
	}

	tables := make([]string, 0, len(fixtures))
	for table := range fixtures {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	fmt.Printf("Found %d tables ready for migration:\n", len(tables))
	for _, table := range tables {
		fmt.Printf("  %s: %d items\n", table, len(fixtures[table]))
	}
	return nil
}

func connect(ctx context.Context, dbPath string, readOnly bool, logger *logrus.Logger) (*database.ConnectionManager, error) {
	cfg := database.DefaultConnectionConfig()
	cfg.DatabasePath = dbPath
	cfg.ReadOnly = readOnly
	cfg.Logger = logger

	cm := database.NewConnectionManager(cfg)
	if err := cm.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cm, nil
}

func runMigration(ctx context.Context, dbPath, jsonPath string, logger *logrus.Logger) error {
	cm, err := connect(ctx, dbPath, false, logger)
	if err != nil {
		return err
	}
	defer cm.Close()

	migrator := migration.NewJSONMigrator(cm.GetDB(), jsonPath, logger)

	result, err := migrator.MigrateFromJSON(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Migration Results ===\n")
	fmt.Printf("Items processed: %d\n", result.Total())
	for _, warning := range result.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}

	return migrator.ValidateMigration(ctx)
}

func validateMigration(ctx context.Context, dbPath, jsonPath string, logger *logrus.Logger) error {
	cm, err := connect(ctx, dbPath, true, logger)
	if err != nil {
		return err
	}
	defer cm.Close()

	if err := migration.NewJSONMigrator(cm.GetDB(), jsonPath, logger).ValidateMigration(ctx); err != nil {
		return err
	}

	fmt.Println("Migration validation passed")
	return nil
}
