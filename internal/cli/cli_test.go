package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/student-records/internal/model"
	"github.com/sakif/student-records/internal/repository/sqlite"
)

// seededDB creates a database file with one student and one user and points
// STORAGE_PATH at it.
func seededDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.db")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORAGE_PATH", path)

	db, err := sqlite.New(path)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.Students().Create(ctx, &model.Student{Name: "Ada", City: "London", Address: "12 Crescent", PostalCode: "NW1"}))
	require.NoError(t, db.Users().Create(ctx, &model.User{Username: "alice", Password: "hunter2"}))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStudentsList(t *testing.T) {
	seededDB(t)

	out, err := run(t, "students", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "London")
	assert.Contains(t, out, "NW1")
}

func TestUsersList_HidesPasswords(t *testing.T) {
	seededDB(t)

	out, err := run(t, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "hunter2")
}

func TestMigrate_CreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORAGE_PATH", path)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestConfigFlag(t *testing.T) {
	dbPath := seededDB(t)
	// An empty STORAGE_PATH would still override the file.
	require.NoError(t, os.Unsetenv("STORAGE_PATH"))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage_path: "+dbPath+"\n"), 0o600))

	out, err := run(t, "--config", cfgPath, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
}

func TestBadConfigPath(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "students", "list")
	assert.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/env.yaml")
	assert.Equal(t, "/flag.yaml", resolveConfigPath("/flag.yaml"))
	assert.Equal(t, "/etc/env.yaml", resolveConfigPath(""))
}
