package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not_versioned.sql")
	require.NoError(t, os.WriteFile(path, []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	err := ValidateDir(dir)
	assert.ErrorContains(t, err, "invalid migration filename")
}

func TestValidateDirRejectsMissingHeaders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "20260101000000_missing_down.sql")
	require.NoError(t, os.WriteFile(path, []byte("-- +goose Up\nSELECT 1;\n"), 0o644))

	err := ValidateDir(dir)
	assert.ErrorContains(t, err, "missing")
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Jobs Index!")
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "_add_jobs_index.sql")
	require.NoError(t, ValidateDir(dir))
}
