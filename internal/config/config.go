package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	AppName     string
	Port        string
	LogLevel    string
	LogPretty   bool
	StoreDriver string
	DatabaseURL string
	SQLitePath  string
	CacheTTL    time.Duration
}

// Load reads .env (if present) into the environment, then resolves settings
// from STOCKMATE_* variables, falling back to a few unprefixed ones the
// deployment may already set (PORT, DATABASE_URL).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("app_name", "Stockmate v1.0")
	v.SetDefault("port", "3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("store_driver", DriverSQLite)
	v.SetDefault("database_url", "")
	v.SetDefault("sqlite_path", "stockmate.db")
	v.SetDefault("cache_ttl", "5m")

	v.SetEnvPrefix("STOCKMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("port", "STOCKMATE_PORT", "PORT")
	_ = v.BindEnv("database_url", "STOCKMATE_DATABASE_URL", "DATABASE_URL")
	return v
}

func fromViper(v *viper.Viper) (Config, error) {
	c := Config{
		AppName:     v.GetString("app_name"),
		Port:        v.GetString("port"),
		LogLevel:    v.GetString("log_level"),
		LogPretty:   v.GetBool("log_pretty"),
		StoreDriver: strings.ToLower(v.GetString("store_driver")),
		DatabaseURL: v.GetString("database_url"),
		SQLitePath:  v.GetString("sqlite_path"),
		CacheTTL:    v.GetDuration("cache_ttl"),
	}
	switch c.StoreDriver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return Config{}, fmt.Errorf("store driver %q needs DATABASE_URL", c.StoreDriver)
		}
	default:
		return Config{}, fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	return c, nil
}
