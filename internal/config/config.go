package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration parsed from environment
// variables. A local .env file is loaded first when present.
type Config struct {
	Addr             string `env:"ADDR" envDefault:":8080"`
	DBPath           string `env:"DB_PATH" envDefault:"futsalboard.db"`
	TrustedProxies   string `env:"TRUSTED_PROXIES" envDefault:"127.0.0.1,::1"`
	RequireFormation bool   `env:"REQUIRE_FORMATION" envDefault:"false"`
	Persist          bool   `env:"PERSIST" envDefault:"true"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
