package observability

import "time"

// Config configures OTLP trace and metric export. Disabled by default so a
// bare deployment does not need a collector.
type Config struct {
	Enabled bool `mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port (e.g. "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`

	// Insecure allows plain-HTTP export (for development).
	Insecure bool `mapstructure:"insecure"`

	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`

	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}
