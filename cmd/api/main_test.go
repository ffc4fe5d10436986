package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsConfigErrors(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("CORS_ORIGINS", "*")

	assert.Error(t, run())
}

func TestRunReturnsSchedulerErrorAfterOpeningDatabase(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "ads.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SESSION_PURGE_SCHEDULE", "every now and then")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduling session purge")
}
