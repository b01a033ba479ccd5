// Package config loads service configuration from ADOPTION_-prefixed
// environment variables with sensible development defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds event publishing settings. An empty broker list disables
// publishing.
type KafkaConfig struct {
	Brokers []string
}

// ServiceConfig holds all configuration for the adoption service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	StoreDriver string
	SQLitePath  string
	DBConfig    DatabaseConfig
	KafkaConfig KafkaConfig
}

// Load reads configuration from the environment. Every key is overridable via
// an ADOPTION_-prefixed variable, e.g. ADOPTION_SERVICE_PORT.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("ADOPTION")
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("SQLITE_PATH", "adoption.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "adoption")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "")

	driver := v.GetString("STORE_DRIVER")
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}

	port := v.GetString("SERVICE_PORT")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	var brokers []string
	if raw := v.GetString("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return &ServiceConfig{
		Port:        port,
		AppEnv:      v.GetString("APP_ENV"),
		StoreDriver: driver,
		SQLitePath:  v.GetString("SQLITE_PATH"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaConfig: KafkaConfig{Brokers: brokers},
	}, nil
}
