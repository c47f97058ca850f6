package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 5 * time.Second
)

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

type config struct {
	Addr            string
	ShutdownTimeout time.Duration
	LogLevel        string
}

// loadConfig reads ADDR, SHUTDOWN_TIMEOUT and LOG_LEVEL, falling back to
// defaults.
func loadConfig() (config, error) {
	cfg := config{
		Addr:            defaultAddr,
		ShutdownTimeout: defaultShutdownTimeout,
	}

	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}

	cfg.LogLevel = os.Getenv("LOG_LEVEL")

	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT %q: %w", raw, err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}
