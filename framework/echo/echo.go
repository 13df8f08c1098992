// Package jwtecho adapts the core token check to Echo.
package jwtecho

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/signedtoken/jwtauth"
	"github.com/signedtoken/jwtauth/core"
	"github.com/signedtoken/jwtauth/token"
)

// DefaultIdentityKey is the echo.Context key holding the identity.
const DefaultIdentityKey = "identity"

// echoMiddlewareConfig holds all configuration for the middleware
type echoMiddlewareConfig struct {
	errorHandler      func(echo.Context, error) error
	contextKey        string
	tokenExtractor    jwtauth.TokenExtractor
	scheme            string
	validateOnOptions bool
}

// New creates an Echo middleware that checks tokens with c.
// The identity is stored on the echo.Context and on the request context.
func New(c *core.Core, opts ...Option) echo.MiddlewareFunc {
	config := &echoMiddlewareConfig{
		contextKey:        DefaultIdentityKey,
		scheme:            jwtauth.DefaultScheme,
		validateOnOptions: true,
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.tokenExtractor == nil {
		config.tokenExtractor = jwtauth.AuthHeaderTokenExtractor(config.scheme)
	}
	if config.errorHandler == nil {
		config.errorHandler = newErrorHandler(config.scheme)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			r := ctx.Request()
			if !config.validateOnOptions && r.Method == http.MethodOptions {
				return next(ctx)
			}

			raw, err := config.tokenExtractor(r)
			if err != nil {
				return config.errorHandler(ctx, fmt.Errorf("error extracting token: %w", err))
			}

			identity, err := c.CheckToken(r.Context(), raw)
			if err != nil {
				return config.errorHandler(ctx, err)
			}

			if identity != nil {
				ctx.SetRequest(r.WithContext(core.SetIdentity(r.Context(), identity)))
				ctx.Set(config.contextKey, identity)
			}

			return next(ctx)
		}
	}
}

func newErrorHandler(scheme string) func(echo.Context, error) error {
	challenge := jwtauth.NewErrorHandler(scheme)
	return func(ctx echo.Context, err error) error {
		challenge(ctx.Response(), ctx.Request(), err)
		return nil
	}
}

// GetIdentity extracts the identity from the Echo context. An empty
// contextKey means DefaultIdentityKey.
func GetIdentity(ctx echo.Context, contextKey string) (token.Claims, bool) {
	if contextKey == "" {
		contextKey = DefaultIdentityKey
	}
	identity, ok := ctx.Get(contextKey).(token.Claims)
	return identity, ok
}
