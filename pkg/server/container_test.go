package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	fixtures := filepath.Join(t.TempDir(), "fixtures.json")
	data := `{"Movies":[{"id":123,"title":"X"}],"MovieCast":[{"movieId":123,"actorName":"A"}]}`
	if err := os.WriteFile(fixtures, []byte(data), 0o600); err != nil {
		t.Fatalf("Failed to write fixtures: %v", err)
	}

	return &config.Config{
		Environment: "test",
		Port:        "8080",
		Tables: config.TablesConfig{
			Movies:    "Movies",
			MovieCast: "MovieCast",
			RoleIndex: "roleIx",
		},
		Store: config.StoreConfig{
			Type:          "memory",
			FixturesPath:  fixtures,
			RetryAttempts: 1,
		},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig(t), nil)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container == nil {
		t.Fatal("Container is nil")
	}
	if container.Store == nil {
		t.Error("Store is nil")
	}
	if container.MovieService == nil {
		t.Error("MovieService is nil")
	}
	if container.CastMemberService == nil {
		t.Error("CastMemberService is nil")
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

// TestContainerServices verifies that services read from the configured store
func TestContainerServices(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig(t), nil)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	details, err := container.MovieService.GetMovie(context.Background(), &models.MovieRequest{MovieID: 123, IncludeCast: true})
	if err != nil {
		t.Fatalf("GetMovie failed: %v", err)
	}
	if details.Movie["title"] != "X" {
		t.Errorf("Expected title X, got %v", details.Movie["title"])
	}
	if len(details.Cast) != 1 {
		t.Errorf("Expected 1 cast member, got %d", len(details.Cast))
	}
}

// TestNewContainerUnsupportedStore verifies store creation errors are returned
func TestNewContainerUnsupportedStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Type = "redis"

	if _, err := NewContainer(context.Background(), cfg, nil); err == nil {
		t.Fatal("Expected error for unsupported store type")
	}
}
