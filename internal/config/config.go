package config

import (
	"github.com/caarlos0/env/v10"
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Auth   AuthConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string `env:"PORT" envDefault:"3000"`
	ClientOrigin string `env:"CLIENT_SITE" envDefault:"http://localhost:5173"`
}

// MongoConfig holds document store configuration.
type MongoConfig struct {
	URI    string `env:"DB_URI" envDefault:"mongodb://localhost:27017"`
	DBName string `env:"DB_NAME" envDefault:"ServiceReview"`
}

// RedisConfig holds cache configuration. Caching is disabled when the URL is
// empty.
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// AuthConfig holds identity-provider configuration. The client ID is the
// expected audience of incoming ID tokens.
type AuthConfig struct {
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
}

// NewConfig creates a new Config from the environment.
func NewConfig() (*Config, error) {
	cfg := new(Config)
	err := env.Parse(cfg)

	return cfg, err
}
