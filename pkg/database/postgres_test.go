package database

import (
	"path/filepath"
	"testing"

	"ads-inventory-ws/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLite(t *testing.T) {
	cfg := config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "ads.db"),
	}

	db, err := ConnectDB(cfg)
	require.NoError(t, err)
	defer Close(db)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestConnectUnsupportedDriver(t *testing.T) {
	_, err := ConnectDB(config.DBConfig{Driver: "oracle"})
	require.Error(t, err)
}
