// Package config loads service settings from the environment.
//
// A .env file is read first when present; variables already set in the
// process environment win over the file. JWT_SECRET is removed from the
// environment once it has been read.
//
//	JWT_SECRET       signing secret (required, non-empty)
//	JWT_EXPIRES_IN   token lifetime, e.g. "24h", "7d" or "3600" (default "24h")
//	JWT_AUTH_SCHEME  Authorization scheme (default "Bearer")
//	HTTP_ADDR        listen address for the serve command (default ":8080")
//	LOG_LEVEL        logrus level name (default "info")
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/signedtoken/jwtauth/token"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Settings.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when a .env file exists but cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")
)

// Settings holds everything the CLI and the HTTP server need.
type Settings struct {
	Secret    string `env:"JWT_SECRET,required,notEmpty,unset"`
	ExpiresIn string `env:"JWT_EXPIRES_IN" envDefault:"24h"`
	Scheme    string `env:"JWT_AUTH_SCHEME" envDefault:"Bearer"`
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the given .env files (".env" when none are named) and then
// parses the process environment. Missing files are skipped.
func Load(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, errors.Join(ErrLoadingEnvFile, err)
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, errors.Join(ErrParsingConfig, err)
	}
	return s, nil
}

// LoadFrom parses settings from environment instead of the process
// environment.
func LoadFrom(environment map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environment}); err != nil {
		return Settings{}, errors.Join(ErrParsingConfig, err)
	}
	return s, nil
}

// TokenConfig builds the configured token.Config.
func (s Settings) TokenConfig() (*token.Config, error) {
	cfg, err := token.NewConfig(s.Secret, s.ExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// String implements fmt.Stringer without the secret.
func (s Settings) String() string {
	return fmt.Sprintf("Settings{Secret: [REDACTED], ExpiresIn: %s, Scheme: %s, HTTPAddr: %s, LogLevel: %s}",
		s.ExpiresIn, s.Scheme, s.HTTPAddr, s.LogLevel)
}

// LogValue implements slog.LogValuer without the secret.
func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("secret", "[REDACTED]"),
		slog.String("expires_in", s.ExpiresIn),
		slog.String("scheme", s.Scheme),
		slog.String("http_addr", s.HTTPAddr),
		slog.String("log_level", s.LogLevel),
	)
}
