// Package config loads server configuration from the environment
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

// Storage backends
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// DefaultEnvFile is read when Load is called without files and it exists
const DefaultEnvFile = ".env"

// Config is the server configuration
type Config struct {
	GRPCPort int    `env:"MAUSRITTER_GRPC_PORT" envDefault:"50051"`
	Storage  string `env:"MAUSRITTER_STORAGE" envDefault:"redis"`

	RedisAddr     string `env:"MAUSRITTER_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPoolSize int    `env:"MAUSRITTER_REDIS_POOL_SIZE" envDefault:"10"`
	SQLitePath    string `env:"MAUSRITTER_SQLITE_PATH" envDefault:"mausritter.db"`

	// TokenSecret signs bearer tokens. Empty means a random secret per boot.
	TokenSecret string        `env:"MAUSRITTER_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"MAUSRITTER_TOKEN_TTL" envDefault:"720h"`
	ProposalTTL time.Duration `env:"MAUSRITTER_PROPOSAL_TTL" envDefault:"15m"`
	SessionName string        `env:"MAUSRITTER_SESSION_NAME" envDefault:"New Session"`

	LogLevel     string `env:"MAUSRITTER_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"MAUSRITTER_LOG_FORMAT" envDefault:"text"`
	OTelEndpoint string `env:"MAUSRITTER_OTEL_ENDPOINT"`

	AutosaveDelay time.Duration `env:"MAUSRITTER_AUTOSAVE_DELAY" envDefault:"1s"`
}

// Load reads the given .env files, or .env when present, and then parses
// the environment. Variables already set win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			files = []string{DefaultEnvFile}
		}
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, errors.Wrapf(err, "failed to load env files %v", files)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enums
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("MAUSRITTER_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateEnum("MAUSRITTER_STORAGE", c.Storage, []string{StorageRedis, StorageSQLite}, vb)
	errors.ValidateEnum("MAUSRITTER_LOG_LEVEL", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("MAUSRITTER_LOG_FORMAT", c.LogFormat, []string{"text", "json"}, vb)

	switch c.Storage {
	case StorageRedis:
		errors.ValidateRequired("MAUSRITTER_REDIS_ADDR", c.RedisAddr, vb)
		if c.RedisPoolSize <= 0 {
			vb.InvalidField("MAUSRITTER_REDIS_POOL_SIZE", "must be positive")
		}
	case StorageSQLite:
		errors.ValidateRequired("MAUSRITTER_SQLITE_PATH", c.SQLitePath, vb)
	}

	if c.TokenSecret != "" && len(c.TokenSecret) < 32 {
		vb.InvalidField("MAUSRITTER_TOKEN_SECRET", "must be at least 32 bytes")
	}
	if c.TokenTTL <= 0 {
		vb.InvalidField("MAUSRITTER_TOKEN_TTL", "must be positive")
	}
	if c.ProposalTTL <= 0 {
		vb.InvalidField("MAUSRITTER_PROPOSAL_TTL", "must be positive")
	}
	if c.AutosaveDelay <= 0 {
		vb.InvalidField("MAUSRITTER_AUTOSAVE_DELAY", "must be positive")
	}

	return vb.Build()
}
