package server

import (
	"fmt"

	"github.com/skillsenselab/storeapi/security"
	"github.com/skillsenselab/storeapi/server/middleware"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string                `mapstructure:"host"`
	Port         int                   `mapstructure:"port"`
	ReadTimeout  int                   `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int                   `mapstructure:"write_timeout"` // seconds
	IdleTimeout  int                   `mapstructure:"idle_timeout"`  // seconds
	CORS         middleware.CORSConfig `mapstructure:"cors"`
	TLS          security.TLSConfig    `mapstructure:"tls"`

	// PublicDir, when set, is served as static frontend assets at /.
	PublicDir string `mapstructure:"public_dir"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	return c.TLS.Validate()
}
