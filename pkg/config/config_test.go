package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("DB_NAME", "ads")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "ads_session", cfg.Session.CookieName)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	os.Unsetenv("SESSION_SECRET")
	t.Setenv("DB_NAME", "ads")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestDSN(t *testing.T) {
	d := DBConfig{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", Name: "ads", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=ads port=5432 sslmode=disable TimeZone=UTC", d.DSN())

	d.URL = "postgres://u:p@db/ads"
	assert.Equal(t, "postgres://u:p@db/ads", d.DSN())

	s := DBConfig{Driver: DriverSQLite, SQLitePath: "local.db"}
	assert.Equal(t, "local.db", s.DSN())
}

func TestLoadRejectsWildcardCORS(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("DB_NAME", "ads")
	t.Setenv("CORS_ORIGINS", "*")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDBIgnoresSessionSettings(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	os.Unsetenv("SESSION_SECRET")
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "ops.db")

	db, err := LoadDB()
	require.NoError(t, err)
	assert.Equal(t, "ops.db", db.DSN())
}
