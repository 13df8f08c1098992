package core

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/signedtoken/jwtauth/token"
)

// TokenVerifier classifies a raw token. *token.Verifier satisfies it.
type TokenVerifier interface {
	Verify(raw string) token.Outcome
}

// Logger defines an optional logging interface for the core.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Core is the framework-agnostic token checking engine.
// It holds no per-request state and is safe for concurrent use.
type Core struct {
	verifier            TokenVerifier
	credentialsOptional bool
	logger              Logger
	tracer              trace.Tracer
}

// CheckToken verifies raw and returns the identity it carries.
//
//   - Valid: returns the identity.
//   - Missing: returns ErrJWTMissing, or (nil, nil) when credentials are optional.
//   - Expired or Invalid: returns a *ValidationError, which matches ErrJWTInvalid.
func (c *Core) CheckToken(ctx context.Context, raw string) (token.Claims, error) {
	_, span := c.tracer.Start(ctx, "jwtauth.check_token")
	defer span.End()

	start := time.Now()
	outcome := c.verifier.Verify(raw)
	duration := time.Since(start)

	span.SetAttributes(attribute.String("jwtauth.outcome", outcome.String()))

	var err error
	switch o := outcome.(type) {
	case token.Valid:
		if c.logger != nil {
			c.logger.Debug("Token validated successfully", "duration", duration)
		}
		return o.Identity, nil

	case token.Missing:
		if c.credentialsOptional {
			if c.logger != nil {
				c.logger.Debug("No token provided, but credentials are optional")
			}
			return nil, nil
		}
		if c.logger != nil {
			c.logger.Warn("No token provided and credentials are required")
		}
		err = ErrJWTMissing

	case token.Expired:
		err = NewValidationError(ErrorCodeTokenExpired, "token expired", token.ErrExpiredToken)

	case token.Invalid:
		if o.Reason == token.ReasonSignatureMismatch {
			err = NewValidationError(ErrorCodeInvalidSignature, "token signature mismatch", token.ErrSignatureMismatch)
		} else {
			err = NewValidationError(ErrorCodeTokenMalformed, "token malformed", token.ErrMalformedToken)
		}

	default:
		err = NewValidationError(ErrorCodeTokenMalformed, "unrecognized verification outcome", token.ErrMalformedToken)
	}

	span.SetStatus(otelcodes.Error, err.Error())
	if c.logger != nil && err != ErrJWTMissing {
		c.logger.Warn("Token validation failed", "error", err, "outcome", outcome.String(), "duration", duration)
	}
	return nil, err
}
