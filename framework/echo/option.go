package jwtecho

import (
	"github.com/labstack/echo/v4"

	"github.com/signedtoken/jwtauth"
)

// Option is a function that configures the middleware
type Option func(*echoMiddlewareConfig)

// WithErrorHandler sets a custom error handler. Its return value is returned
// from the middleware, so returning an *echo.HTTPError hands the response to
// Echo's HTTPErrorHandler.
func WithErrorHandler(handler func(echo.Context, error) error) Option {
	return func(config *echoMiddlewareConfig) {
		config.errorHandler = handler
	}
}

// WithContextKey sets a custom context key to store the identity
func WithContextKey(key string) Option {
	return func(config *echoMiddlewareConfig) {
		config.contextKey = key
	}
}

// WithTokenExtractor sets a custom token extractor
func WithTokenExtractor(extractor jwtauth.TokenExtractor) Option {
	return func(config *echoMiddlewareConfig) {
		config.tokenExtractor = extractor
	}
}

// WithScheme sets the Authorization scheme read by the default extractor.
func WithScheme(scheme string) Option {
	return func(config *echoMiddlewareConfig) {
		config.scheme = scheme
	}
}

// WithValidateOnOptions sets whether OPTIONS requests are checked.
func WithValidateOnOptions(value bool) Option {
	return func(config *echoMiddlewareConfig) {
		config.validateOnOptions = value
	}
}
