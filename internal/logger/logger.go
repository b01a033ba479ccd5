// Package logger builds the service's zap loggers.
package logger

import (
	"go.uber.org/zap"
)

// New creates a logger for the given application environment: JSON output in
// production, console output otherwise.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "production" {
		return zap.NewProduction()
	}
	cfg := zap.NewDevelopmentConfig()
	return cfg.Build()
}

// NewNamed creates a logger carrying the service name on every entry.
func NewNamed(appEnv, service string) (*zap.Logger, error) {
	log, err := New(appEnv)
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
