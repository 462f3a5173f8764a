package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the single configuration struct handed to the app constructor;
// there is no ambient global configuration anywhere in the core.
type Config struct {
	DBPath string `env:"ARCADE_DB_PATH" envDefault:"arcade.db"`

	SyncInterval  time.Duration `env:"ARCADE_SYNC_INTERVAL" envDefault:"30s"`
	TickInterval  time.Duration `env:"ARCADE_CLOCK_TICK" envDefault:"1s"`
	MismatchDelay time.Duration `env:"ARCADE_MISMATCH_DELAY" envDefault:"800ms"`

	Remote RemoteConfig `envPrefix:"ARCADE_REMOTE_"`
}

// RemoteConfig configures the S3-compatible remote document store. An
// empty bucket means "no remote configured"; the shell then supplies its
// own remote.Client (or an in-memory one) instead.
type RemoteConfig struct {
	Bucket          string `env:"BUCKET"`
	Endpoint        string `env:"ENDPOINT"`
	Region          string `env:"REGION" envDefault:"auto"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
