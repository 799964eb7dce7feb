package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Every up migration must ship a matching down migration.
func TestMigrationPairsComplete(t *testing.T) {
	entries, err := files.ReadDir("sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Fatalf("unexpected migration file %q", name)
		}
	}

	require.Equal(t, ups, downs)
}

func TestMigrationsContainCoreTables(t *testing.T) {
	raw, err := files.ReadFile("sql/0001_init.up.sql")
	require.NoError(t, err)

	schema := string(raw)
	for _, table := range []string{
		"students", "companies", "jobs", "job_requirements",
		"applications", "roles", "permissions", "role_permissions", "users",
	} {
		require.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
}
