package throttle

import (
	"fmt"
	"time"
)

// Config configures the login throttle.
type Config struct {
	// MaxAttempts is the number of attempts admitted per window per client
	// key (default: 5).
	MaxAttempts int `mapstructure:"max_attempts"`

	// Window is the fixed counting interval (default: 15m). When a window
	// elapses, the next attempt starts a fresh one.
	Window time.Duration `mapstructure:"window"`

	// SweepInterval controls how often idle buckets are evicted
	// (default: 5m).
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	if c.Window == 0 {
		c.Window = 15 * time.Minute
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = 5 * time.Minute
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("throttle: max_attempts must be >= 1 (got: %d)", c.MaxAttempts)
	}
	if c.Window <= 0 {
		return fmt.Errorf("throttle: window must be positive (got: %s)", c.Window)
	}
	return nil
}
