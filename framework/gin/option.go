package jwtgin

import (
	"github.com/gin-gonic/gin"

	"github.com/signedtoken/jwtauth"
)

// Option defines a functional option for configuring the middleware
type Option func(*ginMiddlewareConfig)

// WithErrorHandler sets a custom error handler for the middleware.
// The chain is aborted after it returns.
func WithErrorHandler(handler func(*gin.Context, error)) Option {
	return func(config *ginMiddlewareConfig) {
		config.errorHandler = handler
	}
}

// WithContextKey sets the gin.Context key used to store the identity.
func WithContextKey(key string) Option {
	return func(config *ginMiddlewareConfig) {
		config.contextKey = key
	}
}

// WithTokenExtractor sets a custom token extractor.
func WithTokenExtractor(extractor jwtauth.TokenExtractor) Option {
	return func(config *ginMiddlewareConfig) {
		config.tokenExtractor = extractor
	}
}

// WithScheme sets the Authorization scheme read by the default extractor.
func WithScheme(scheme string) Option {
	return func(config *ginMiddlewareConfig) {
		config.scheme = scheme
	}
}

// WithValidateOnOptions sets whether OPTIONS requests are checked.
func WithValidateOnOptions(value bool) Option {
	return func(config *ginMiddlewareConfig) {
		config.validateOnOptions = value
	}
}
