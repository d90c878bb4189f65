package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// ClientConfig configures the command-line API client.
type ClientConfig struct {
	// BaseURL of the task tracker server.
	// Env: TASKS_API_URL
	BaseURL string `env:"API_URL"`

	// Token is a bearer token sent with protected requests.
	// Env: TASKS_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds a single HTTP call.
	// Env: TASKS_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetClientConfig reads client settings from TASKS_* environment variables
// on top of defaults.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		BaseURL:        "http://localhost:8080",
		RequestTimeout: 10 * time.Second,
	}

	var envCfg struct {
		Client ClientConfig `envPrefix:"TASKS_"`
	}
	if err := parseEnv(&envCfg); err != nil {
		return nil, err
	}

	if err := mergo.Merge(cfg, envCfg.Client, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
