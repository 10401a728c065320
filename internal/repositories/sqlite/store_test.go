package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-api/internal/database"
	"movie-catalog-api/internal/migration"
	"movie-catalog-api/internal/repositories"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	cm := database.NewConnectionManager(&database.ConnectionConfig{
		DatabasePath: filepath.Join(t.TempDir(), "movies.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		Logger:       logger,
	})
	ctx := context.Background()
	require.NoError(t, cm.Connect(ctx))
	t.Cleanup(func() { cm.Close() })
	require.NoError(t, cm.HealthCheck(ctx))

	db := cm.GetDB()
	require.NoError(t, migration.MigrateSchema(db, logger))

	rows := []struct {
		table string
		doc   string
	}{
		{"Movies", `{"id": 123, "title": "X"}`},
		{"Movies", `{"id": 456, "title": "Y"}`},
		{"Movies", `{"movieId": 123, "actorName": "Mark Hamill", "roleName": "Luke Skywalker"}`},
		{"Movies", `{"movieId": 123, "actorName": "Harrison Ford", "roleName": "Han Solo"}`},
		{"MovieCast", `{"movieId": 123, "actorName": "Mark Hamill"}`},
	}
	for _, r := range rows {
		_, err := db.ExecContext(ctx, `INSERT INTO items (table_name, doc) VALUES (?, ?)`, r.table, r.doc)
		require.NoError(t, err)
	}

	return NewStore(db)
}

func TestStore_GetByKey(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	item, err := store.GetByKey(ctx, "Movies", repositories.Key{Attribute: "id", Value: 123})
	require.NoError(t, err)
	assert.Equal(t, json.Number("123"), item["id"])
	assert.Equal(t, "X", item["title"])

	_, err = store.GetByKey(ctx, "Movies", repositories.Key{Attribute: "id", Value: 999})
	assert.True(t, repositories.IsNotFound(err))

	_, err = store.GetByKey(ctx, "MovieCast", repositories.Key{Attribute: "id", Value: 456})
	assert.True(t, repositories.IsNotFound(err))
}

func TestStore_Query(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	key := repositories.Key{Attribute: "movieId", Value: 123}

	tests := []struct {
		name   string
		query  *repositories.Query
		actors []string
	}{
		{
			name:   "by foreign key",
			query:  &repositories.Query{Table: "Movies", Key: key},
			actors: []string{"Mark Hamill", "Harrison Ford"},
		},
		{
			name: "role prefix",
			query: &repositories.Query{
				Table:     "Movies",
				Index:     "roleIx",
				Key:       key,
				Condition: &repositories.PrefixCondition{Attribute: "roleName", Prefix: "Han"},
			},
			actors: []string{"Harrison Ford"},
		},
		{
			name: "actor prefix",
			query: &repositories.Query{
				Table:     "Movies",
				Key:       key,
				Condition: &repositories.PrefixCondition{Attribute: "actorName", Prefix: "Mark"},
			},
			actors: []string{"Mark Hamill"},
		},
		{
			name: "prefix with wildcard characters",
			query: &repositories.Query{
				Table:     "Movies",
				Key:       key,
				Condition: &repositories.PrefixCondition{Attribute: "actorName", Prefix: "%"},
			},
			actors: []string{},
		},
		{
			name:   "other table",
			query:  &repositories.Query{Table: "MovieCast", Key: key},
			actors: []string{"Mark Hamill"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := store.Query(ctx, tt.query)
			require.NoError(t, err)

			actors := []string{}
			for _, item := range items {
				actors = append(actors, item["actorName"].(string))
			}
			assert.Equal(t, tt.actors, actors)
		})
	}
}

func TestJSONPath(t *testing.T) {
	assert.Equal(t, `$."movieId"`, jsonPath("movieId"))
	assert.Equal(t, `$."a\"b"`, jsonPath(`a"b`))
}
