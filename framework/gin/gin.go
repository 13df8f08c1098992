// Package jwtgin adapts the core token check to Gin.
package jwtgin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signedtoken/jwtauth"
	"github.com/signedtoken/jwtauth/core"
	"github.com/signedtoken/jwtauth/token"
)

// DefaultIdentityKey is the gin.Context key holding the identity.
const DefaultIdentityKey = "identity"

var (
	ErrMissingIdentity = errors.New("no identity found in context")
	ErrInvalidIdentity = errors.New("invalid identity type")
)

type ginMiddlewareConfig struct {
	errorHandler      func(*gin.Context, error)
	contextKey        string
	tokenExtractor    jwtauth.TokenExtractor
	scheme            string
	validateOnOptions bool
}

// New creates a Gin middleware that checks tokens with c.
//
// A successful check stores the identity under the configured key on the
// gin.Context and on the request context, so both GetIdentity and
// jwtauth.GetIdentity(c.Request.Context()) find it. Rejections abort the
// chain with the same 401 body the net/http middleware writes.
func New(c *core.Core, opts ...Option) gin.HandlerFunc {
	config := &ginMiddlewareConfig{
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

	return func(ctx *gin.Context) {
		if !config.validateOnOptions && ctx.Request.Method == http.MethodOptions {
			ctx.Next()
			return
		}

		raw, err := config.tokenExtractor(ctx.Request)
		if err != nil {
			config.errorHandler(ctx, fmt.Errorf("error extracting token: %w", err))
			ctx.Abort()
			return
		}

		identity, err := c.CheckToken(ctx.Request.Context(), raw)
		if err != nil {
			config.errorHandler(ctx, err)
			ctx.Abort()
			return
		}

		if identity != nil {
			ctx.Request = ctx.Request.WithContext(core.SetIdentity(ctx.Request.Context(), identity))
			ctx.Set(config.contextKey, identity)
		}

		ctx.Next()
	}
}

func newErrorHandler(scheme string) func(*gin.Context, error) {
	fallback := jwtauth.NewErrorHandler(scheme)
	return func(ctx *gin.Context, err error) {
		fallback(ctx.Writer, ctx.Request, err)
	}
}

// GetIdentity returns the identity New stored on ctx. An empty contextKey
// means DefaultIdentityKey.
func GetIdentity(ctx *gin.Context, contextKey string) (token.Claims, error) {
	if contextKey == "" {
		contextKey = DefaultIdentityKey
	}
	value, exists := ctx.Get(contextKey)
	if !exists {
		return nil, ErrMissingIdentity
	}

	identity, ok := value.(token.Claims)
	if !ok {
		return nil, ErrInvalidIdentity
	}

	return identity, nil
}
