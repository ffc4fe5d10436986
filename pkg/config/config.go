package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Session   SessionConfig
	Redis     RedisConfig
	Dashboard DashboardConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name      string `envconfig:"APP_NAME" default:"ADS Inventory v1.0"`
	Port      string `envconfig:"PORT" default:"3000"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// comma separated; a wildcard is rejected because the session cookie is credentialed
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
}

type DBConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"postgres"`
	URL    string `envconfig:"DATABASE_URL"`

	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`

	SQLitePath string `envconfig:"SQLITE_PATH" default:"ads-inventory.db"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

type SessionConfig struct {
	Secret        string        `envconfig:"SESSION_SECRET" required:"true"`
	TTL           time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieName    string        `envconfig:"SESSION_COOKIE" default:"ads_session"`
	SecureCookie  bool          `envconfig:"SESSION_SECURE_COOKIE" default:"false"`
	PurgeSchedule string        `envconfig:"SESSION_PURGE_SCHEDULE" default:"@hourly"`
}

type RedisConfig struct {
	URL string `envconfig:"REDIS_URL"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type DashboardConfig struct {
	CacheTTL time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"30s"`
}

type AdminConfig struct {
	Username string `envconfig:"ADMIN_USERNAME" default:"admin"`
	Password string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Session.Secret) == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if strings.TrimSpace(cfg.App.CORSOrigins) == "*" {
		return nil, fmt.Errorf("CORS_ORIGINS cannot be a wildcard")
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	return &cfg, nil
}

// LoadDB reads only the database settings, for operator tools that never serve HTTP.
func LoadDB() (*DBConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var db DBConfig
	if err := envconfig.Process("", &db); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := db.validate(); err != nil {
		return nil, err
	}
	return &db, nil
}

func (d DBConfig) validate() error {
	switch d.Driver {
	case DriverPostgres:
		if d.URL == "" && d.Name == "" {
			return fmt.Errorf("DATABASE_URL or DB_NAME is required for postgres")
		}
	case DriverSQLite:
		if d.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", d.Driver)
	}
	return nil
}

// DSN returns DATABASE_URL or a key/value DSN built from the discrete fields.
func (d DBConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.SQLitePath
	}
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone,
	)
}
