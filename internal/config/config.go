package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" env-default:":8080" env-description:"web server listen address"`
	LogLevel       string        `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	LogFormat      string        `env:"LOG_FORMAT" env-default:"json" env-description:"json or console"`
	AISeed         uint64        `env:"AI_SEED" env-default:"0" env-description:"seed for the AI's random rules, 0 for a random seed"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s" env-description:"per-request handler timeout"`
}

// Load reads the configuration from the environment. Variables found in
// envFiles (".env" when none are given) are applied first; missing files are
// ignored and already-set variables win.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	config := &Config{}
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	return config, nil
}

// Usage describes the supported environment variables.
func Usage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return text
}
