package jwtauth

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/signedtoken/jwtauth/core"
)

// Option configures the JWTMiddleware.
// Returns error for validation failures.
type Option func(*JWTMiddleware) error

// WithVerifier sets the verifier used to check tokens (REQUIRED).
// *token.Verifier satisfies core.TokenVerifier.
//
// Example:
//
//	cfg, err := token.NewConfig(os.Getenv("JWT_SECRET"), "24h")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := token.NewVerifier(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	middleware, err := jwtauth.New(
//	    jwtauth.WithVerifier(v),
//	)
func WithVerifier(v core.TokenVerifier) Option {
	return func(m *JWTMiddleware) error {
		if v == nil {
			return ErrVerifierNil
		}
		m.verifier = v
		return nil
	}
}

// WithScheme sets the authorization scheme expected before the token in the
// Authorization header. It also names the scheme in WWW-Authenticate
// challenges written by the default error handler.
//
// Default: "Bearer"
func WithScheme(scheme string) Option {
	return func(m *JWTMiddleware) error {
		if scheme == "" {
			return ErrSchemeEmpty
		}
		m.scheme = scheme
		return nil
	}
}

// WithCredentialsOptional sets whether credentials are optional.
// If set to true, a request without a token reaches the next handler with no
// identity attached. A presented token is still verified.
//
// Default: false (credentials required)
func WithCredentialsOptional(value bool) Option {
	return func(m *JWTMiddleware) error {
		m.credentialsOptional = value
		return nil
	}
}

// WithValidateOnOptions sets whether OPTIONS requests should have their JWT validated.
//
// Default: true (OPTIONS requests are validated)
func WithValidateOnOptions(value bool) Option {
	return func(m *JWTMiddleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithErrorHandler sets the handler called when errors occur during JWT validation.
// See the ErrorHandler type for more information.
//
// Default: NewErrorHandler(scheme)
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *JWTMiddleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithTokenExtractor sets the function to extract the JWT from the request.
//
// Default: AuthHeaderTokenExtractor(scheme)
func WithTokenExtractor(e TokenExtractor) Option {
	return func(m *JWTMiddleware) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		m.tokenExtractor = e
		return nil
	}
}

// WithExclusionUrls configures URL patterns to exclude from JWT validation.
// URLs can be full URLs or just paths.
func WithExclusionUrls(exclusions []string) Option {
	return func(m *JWTMiddleware) error {
		if len(exclusions) == 0 {
			return ErrExclusionUrlsEmpty
		}
		m.exclusionURLHandler = func(r *http.Request) bool {
			requestFullURL := r.URL.String()
			requestPath := r.URL.Path

			for _, exclusion := range exclusions {
				if requestFullURL == exclusion || requestPath == exclusion {
					return true
				}
			}
			return false
		}
		return nil
	}
}

// WithExclusionURLHandler sets a custom predicate for requests that skip
// JWT validation. It replaces any list set with WithExclusionUrls.
func WithExclusionURLHandler(h ExclusionURLHandler) Option {
	return func(m *JWTMiddleware) error {
		if h == nil {
			return ErrExclusionHandlerNil
		}
		m.exclusionURLHandler = h
		return nil
	}
}

// WithLogger sets an optional logger for the middleware.
// The logger will be used throughout the validation flow in both middleware and core.
//
// Example:
//
//	middleware, err := jwtauth.New(
//	    jwtauth.WithVerifier(verifier),
//	    jwtauth.WithLogger(slog.Default()),
//	)
func WithLogger(logger Logger) Option {
	return func(m *JWTMiddleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer used for the per-request check span.
//
// Default: the global tracer provider
func WithTracer(tracer trace.Tracer) Option {
	return func(m *JWTMiddleware) error {
		if tracer == nil {
			return ErrTracerNil
		}
		m.tracer = tracer
		return nil
	}
}

// WithMetrics sets the sink for validation counters and latency histograms.
//
// Default: NoopMetrics
func WithMetrics(metrics Metrics) Option {
	return func(m *JWTMiddleware) error {
		if metrics == nil {
			return ErrMetricsNil
		}
		m.metrics = metrics
		return nil
	}
}

// Sentinel errors for configuration validation
var (
	ErrVerifierNil         = errors.New("verifier cannot be nil (use WithVerifier)")
	ErrSchemeEmpty         = errors.New("scheme cannot be empty")
	ErrErrorHandlerNil     = errors.New("errorHandler cannot be nil")
	ErrTokenExtractorNil   = errors.New("tokenExtractor cannot be nil")
	ErrExclusionUrlsEmpty  = errors.New("exclusion URLs list cannot be empty")
	ErrExclusionHandlerNil = errors.New("exclusion URL handler cannot be nil")
	ErrLoggerNil           = errors.New("logger cannot be nil")
	ErrTracerNil           = errors.New("tracer cannot be nil")
	ErrMetricsNil          = errors.New("metrics cannot be nil")
)
