package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingDatabaseURL = errors.New("config: DATABASE_URL is required")

const (
	DriverPQ  = "pq"
	DriverPGX = "pgx"
)

type Config struct {
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	Port              int           `mapstructure:"PORT"`
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMinIdleConns    int           `mapstructure:"DB_MIN_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	DBQueryTimeout    time.Duration `mapstructure:"DB_QUERY_TIMEOUT"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	SentryDSN string `mapstructure:"SENTRY_DSN"`
	AppEnv    string `mapstructure:"APP_ENV"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"DATABASE_URL":         "",
	"PORT":                 3000,
	"DB_DRIVER":            DriverPQ,
	"DB_MAX_OPEN_CONNS":    10,
	"DB_MIN_IDLE_CONNS":    1,
	"DB_CONN_MAX_LIFETIME": "30m",
	"DB_QUERY_TIMEOUT":     "5s",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"SENTRY_DSN":           "",
	"APP_ENV":              "production",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "text",
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is ignored.
func LoadFile(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", envFile, err)
			}
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return ErrMissingDatabaseURL
	}
	switch c.DBDriver {
	case DriverPQ, DriverPGX:
	default:
		return fmt.Errorf("config: DB_DRIVER must be %q or %q, got %q", DriverPQ, DriverPGX, c.DBDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT out of range: %d", c.Port)
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("config: DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns)
	}
	if c.DBMinIdleConns < 0 || c.DBMinIdleConns > c.DBMaxOpenConns {
		return fmt.Errorf("config: DB_MIN_IDLE_CONNS must be between 0 and %d, got %d", c.DBMaxOpenConns, c.DBMinIdleConns)
	}
	return nil
}

// Addr is the listen address; the service binds every interface.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// String masks secrets.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  DatabaseURL: %s\n", redactURL(c.DatabaseURL))
	fmt.Fprintf(&sb, "  Port: %d\n", c.Port)
	fmt.Fprintf(&sb, "  DBDriver: %s\n", c.DBDriver)
	fmt.Fprintf(&sb, "  DBMaxOpenConns: %d\n", c.DBMaxOpenConns)
	fmt.Fprintf(&sb, "  DBMinIdleConns: %d\n", c.DBMinIdleConns)
	fmt.Fprintf(&sb, "  DBConnMaxLifetime: %s\n", c.DBConnMaxLifetime)
	fmt.Fprintf(&sb, "  DBQueryTimeout: %s\n", c.DBQueryTimeout)
	fmt.Fprintf(&sb, "  RedisAddr: %s\n", orEmpty(c.RedisAddr))
	fmt.Fprintf(&sb, "  RedisPassword: %s\n", mask(c.RedisPassword))
	fmt.Fprintf(&sb, "  RedisDB: %d\n", c.RedisDB)
	fmt.Fprintf(&sb, "  SentryDSN: %s\n", mask(c.SentryDSN))
	fmt.Fprintf(&sb, "  AppEnv: %s\n", c.AppEnv)
	fmt.Fprintf(&sb, "  LogLevel: %s\n", c.LogLevel)
	fmt.Fprintf(&sb, "  LogFormat: %s\n", c.LogFormat)
	return sb.String()
}

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	return "********"
}

func orEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return mask(raw)
	}
	return u.Redacted()
}
