// Package config reads dayquest settings from a .env file and the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/keyring"
	"github.com/julianstephens/dayquest/internal/logger"
)

type Config struct {
	// Local cache
	CachePath string
	Timezone  string

	// Remote store
	RemoteDSN        string
	WritebackRetries int

	// Session
	SessionSecret string
	SessionTTL    time.Duration

	// Task lifecycle
	CompletionDelay time.Duration

	LogLevel string
}

// Load reads the given .env files (./.env when none are named) and builds the
// config from the environment. Missing files are not an error.
func Load(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Debug("no .env file loaded, using environment variables", "error", err)
	}

	return &Config{
		CachePath: envString(constants.EnvCachePath, constants.DefaultConfigPath),
		Timezone:  envString(constants.EnvTimezone, "Local"),

		RemoteDSN:        envString(constants.EnvRemoteDSN, ""),
		WritebackRetries: envInt(constants.EnvWritebackRetries, constants.DefaultMaxRetries),

		SessionSecret: envString(constants.EnvSessionSecret, ""),
		SessionTTL:    envDuration(constants.EnvSessionTTL, constants.DefaultSessionTTL),

		CompletionDelay: envDuration(constants.EnvCompletionDelay, constants.CompletionDelay),

		LogLevel: envString(constants.EnvLogLevel, ""),
	}
}

// DSNSource says where the remote connection string came from.
type DSNSource string

const (
	SourceNone    DSNSource = "none"
	SourceFlag    DSNSource = "flag"
	SourceEnv     DSNSource = "environment"
	SourceKeyring DSNSource = "keyring"
)

// ResolveRemoteDSN picks the connection string from the flag, then the
// environment, then the OS keyring. An empty result with SourceNone means the
// app runs local-only.
func (c *Config) ResolveRemoteDSN(flag string) (string, DSNSource, error) {
	if flag != "" {
		return flag, SourceFlag, nil
	}
	if c.RemoteDSN != "" {
		return c.RemoteDSN, SourceEnv, nil
	}
	dsn, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		return dsn, SourceKeyring, nil
	case errors.Is(err, keyring.ErrNotFound):
		return "", SourceNone, nil
	default:
		return "", SourceNone, err
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logger.Warn("config invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

// envDuration accepts Go durations ("1.5s") or a bare number of milliseconds.
func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		logger.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}
