package config

import (
	"fmt"

	"github.com/skillsenselab/storeapi/auth/password"
	"github.com/skillsenselab/storeapi/auth/throttle"
	"github.com/skillsenselab/storeapi/auth/token"
	"github.com/skillsenselab/storeapi/logger"
	"github.com/skillsenselab/storeapi/observability"
	"github.com/skillsenselab/storeapi/server"
	"github.com/skillsenselab/storeapi/store"
)

// AuthConfig groups the authentication component configurations.
type AuthConfig struct {
	Token    token.Config    `mapstructure:"token"`
	Password password.Config `mapstructure:"password"`
}

// Config is the full service configuration.
type Config struct {
	Base          BaseConfig           `mapstructure:"base"`
	Server        server.Config        `mapstructure:"server"`
	Database      store.Config         `mapstructure:"database"`
	Auth          AuthConfig           `mapstructure:"auth"`
	Throttle      throttle.Config      `mapstructure:"throttle"`
	Logging       logger.Config        `mapstructure:"logging"`
	Observability observability.Config `mapstructure:"observability"`
}

// Load reads the service configuration from config.yml, .env, and
// environment overrides, then applies defaults and validates. A missing
// token secret fails here, before anything binds a port.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := load(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Base.Name == "" {
		cfg.Base.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults applies defaults to every component configuration.
func (c *Config) ApplyDefaults() {
	c.Base.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.Token.ApplyDefaults()
	c.Auth.Password.ApplyDefaults()
	c.Throttle.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every component configuration.
func (c *Config) Validate() error {
	checks := []struct {
		name string
		err  error
	}{
		{"base", c.Base.Validate()},
		{"server", c.Server.Validate()},
		{"database", c.Database.Validate()},
		{"auth.token", c.Auth.Token.Validate()},
		{"auth.password", c.Auth.Password.Validate()},
		{"throttle", c.Throttle.Validate()},
		{"logging", c.Logging.Validate()},
	}
	for _, check := range checks {
		if check.err != nil {
			return fmt.Errorf("config: %s: %w", check.name, check.err)
		}
	}
	return nil
}
