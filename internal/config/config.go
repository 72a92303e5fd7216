// Package config loads the pipeline policy from a YAML file and server
// runtime settings from the environment.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/titleflow/wire-batch-pipeline/internal/rails"
)

// Config is the operator-editable pipeline policy.
type Config struct {
	Routing struct {
		// ThresholdDollars separates large-value wires from small-value
		// payouts; exclusive on the wire side.
		ThresholdDollars float64 `yaml:"threshold_dollars"`
		// RTPEnabled gates the near-real-time rail; when false, small-value
		// items fall back to ACH.
		RTPEnabled *bool `yaml:"rtp_enabled"`
	} `yaml:"routing"`

	Provider struct {
		BaseURL string `yaml:"base_url"`
		// APIKeyEnv names the environment variable holding the provider
		// credential, so the key never lives in the config file.
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"provider"`

	Output struct {
		Dir    string `yaml:"dir"`
		Prefix string `yaml:"prefix"`
	} `yaml:"output"`
}

// Default returns the reference deployment policy.
func Default() *Config {
	cfg := &Config{}
	cfg.Routing.ThresholdDollars = float64(rails.DefaultThresholdCents) / 100
	enabled := true
	cfg.Routing.RTPEnabled = &enabled
	cfg.Provider.APIKeyEnv = "WIREBATCH_PROVIDER_KEY"
	cfg.Output.Dir = "."
	cfg.Output.Prefix = "titleflow"
	return cfg
}

// Load reads the YAML policy at path. An empty path returns the defaults.
// Fields omitted from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if cfg.Routing.ThresholdDollars <= 0 {
		return nil, fmt.Errorf("config %q: routing.threshold_dollars must be positive", path)
	}
	return cfg, nil
}

// Policy converts the config into the routing policy shared by preview and
// execution.
func (c *Config) Policy() rails.Policy {
	p := rails.Policy{
		ThresholdCents: int64(math.Round(c.Routing.ThresholdDollars * 100)),
		RTPEnabled:     true,
	}
	if c.Routing.RTPEnabled != nil {
		p.RTPEnabled = *c.Routing.RTPEnabled
	}
	return p
}

// ProviderAPIKey resolves the provider credential from the environment.
func (c *Config) ProviderAPIKey() string {
	if c.Provider.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Provider.APIKeyEnv)
}

// ServerConfig holds runtime settings for the HTTP service.
type ServerConfig struct {
	Addr        string `env:"WIREBATCH_ADDR" envDefault:":8080"`
	BodyLimitMB int    `env:"WIREBATCH_BODY_LIMIT_MB" envDefault:"32"`
}

// LoadServer reads server settings from environment variables.
func LoadServer() (ServerConfig, error) {
	var sc ServerConfig
	if err := env.Parse(&sc); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return sc, nil
}
