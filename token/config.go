package token

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

const (
	// DefaultExpiry is the token lifetime used when none is configured.
	DefaultExpiry = 24 * time.Hour

	// MinExpiry is the smallest lifetime the issuer accepts. Timestamps are
	// encoded with millisecond precision, so anything shorter would collapse
	// exp onto iat.
	MinExpiry = time.Millisecond
)

// Config holds the signing secret and the default expiry policy.
//
// The zero value is an unconfigured Config; call Configure once before
// handing it to NewIssuer or NewVerifier. The secret has no exported
// accessor.
type Config struct {
	state atomic.Pointer[settings]
}

type settings struct {
	secret []byte
	expiry time.Duration
}

// NewConfig returns a Config configured with secret and expiry.
// An empty expiry selects DefaultExpiry.
func NewConfig(secret, expiry string) (*Config, error) {
	c := &Config{}
	if err := c.Configure(secret, expiry); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure sets the secret and default expiry. It succeeds at most once;
// later calls return ErrAlreadyConfigured and leave the Config untouched.
func (c *Config) Configure(secret, expiry string) error {
	if secret == "" {
		return ErrEmptySecret
	}

	d := DefaultExpiry
	if strings.TrimSpace(expiry) != "" {
		parsed, err := ParseExpiry(expiry)
		if err != nil {
			return err
		}
		d = parsed
	}

	s := &settings{secret: []byte(secret), expiry: d}
	if !c.state.CompareAndSwap(nil, s) {
		return ErrAlreadyConfigured
	}
	return nil
}

// Configured reports whether Configure has succeeded.
func (c *Config) Configured() bool {
	return c.state.Load() != nil
}

// DefaultExpiry returns the configured token lifetime, or zero when the
// Config has not been configured.
func (c *Config) DefaultExpiry() time.Duration {
	s := c.state.Load()
	if s == nil {
		return 0
	}
	return s.expiry
}

// load returns the settings or ErrNotConfigured.
func (c *Config) load() (*settings, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	s := c.state.Load()
	if s == nil {
		return nil, ErrNotConfigured
	}
	return s, nil
}

// String implements fmt.Stringer without revealing the secret.
func (c *Config) String() string {
	s := c.state.Load()
	if s == nil {
		return "token.Config{unconfigured}"
	}
	return fmt.Sprintf("token.Config{secret: [REDACTED], expiry: %s}", s.expiry)
}

// LogValue implements slog.LogValuer without revealing the secret.
func (c *Config) LogValue() slog.Value {
	s := c.state.Load()
	if s == nil {
		return slog.GroupValue(slog.Bool("configured", false))
	}
	return slog.GroupValue(
		slog.Bool("configured", true),
		slog.String("secret", "[REDACTED]"),
		slog.Duration("expiry", s.expiry),
	)
}
