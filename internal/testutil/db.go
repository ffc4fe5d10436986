// Package testutil builds throwaway databases for package tests.
package testutil

import (
	"testing"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/pkg/config"
	"ads-inventory-ws/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectDB(config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
