// Package security provides TLS configuration for the HTTP listener.
package security

import (
	"crypto/tls"
	"fmt"
)

// TLSConfig holds the server-side TLS settings. All fields empty means the
// listener serves cleartext (with h2c for HTTP/2).
type TLSConfig struct {
	// CertFile is the path to the server certificate file.
	CertFile string `mapstructure:"cert_file"`

	// KeyFile is the path to the server private key file.
	KeyFile string `mapstructure:"key_file"`

	// MinVersion is the minimum TLS version (defaults to TLS 1.2).
	MinVersion uint16 `mapstructure:"min_version"`
}

// IsEnabled reports whether a certificate is configured.
func (c *TLSConfig) IsEnabled() bool {
	return c != nil && c.CertFile != ""
}

// Validate checks that the TLS configuration is consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("security/tls: both cert_file and key_file must be provided together")
	}
	return nil
}

// Build creates a *tls.Config for the listener. Returns nil when TLS is not
// configured.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}

	minVersion := c.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("security/tls: load key pair: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   minVersion,
	}, nil
}
