package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// ServerConfig holds the API service configuration.
type ServerConfig struct {
	Host          string `env:"SERVER_HOST"    envDefault:"0.0.0.0"`
	Port          int    `env:"SERVER_PORT"    envDefault:"3000"`
	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"dogcafe6ix"`

	Token TokenConfig
}

// TokenConfig holds bearer token and verification code settings.
type TokenConfig struct {
	Secret        string        `env:"TOKEN_SECRET"`
	Issuer        string        `env:"TOKEN_ISSUER"     envDefault:"dogcafe-api"`
	ExpiresIn     time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"168h"`
	CodeExpiresIn time.Duration `env:"CODE_EXPIRES_IN"  envDefault:"15m"`
}

// NewServerConfig creates a ServerConfig instance from environment variables.
func NewServerConfig(logger *zerolog.Logger) *ServerConfig {
	cfg, err := env.ParseAs[ServerConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate server configuration")
	}

	return &cfg
}

// validate checks if the server configuration is valid.
func (c *ServerConfig) validate() error {
	if c.Token.Secret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}

	return nil
}
