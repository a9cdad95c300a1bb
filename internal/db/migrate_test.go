package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsUpAndDown(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "test.db") + "?_pragma=foreign_keys(1)"
	database, err := Init("sqlite", dsn)
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	require.NoError(t, RunMigrations(ctx, database.DB, "sqlite"))

	var tables []string
	require.NoError(t, database.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`))
	for _, want := range []string{"users", "objectives", "objective_progress", "objective_comments", "resources", "finances", "settings", "conversations", "conversation_messages", "quran_verses", "articles", "files"} {
		assert.Contains(t, tables, want)
	}

	require.NoError(t, MigrateDown(ctx, database.DB, "sqlite"))
	tables = nil
	require.NoError(t, database.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`))
	assert.NotContains(t, tables, "files")
	assert.Contains(t, tables, "articles")
}

func TestGetDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", getDialect("sqlite"))
	assert.Equal(t, "postgres", getDialect("pgx"))
	assert.Equal(t, "mysql", getDialect("mysql"))
}
