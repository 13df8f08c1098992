package jwtauth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/signedtoken/jwtauth/core"
	"github.com/signedtoken/jwtauth/token"
)

// JWTMiddleware guards an http.Handler behind a signed token.
type JWTMiddleware struct {
	core                *core.Core
	errorHandler        ErrorHandler
	tokenExtractor      TokenExtractor
	validateOnOptions   bool
	exclusionURLHandler ExclusionURLHandler
	logger              Logger
	metrics             Metrics
	scheme              string

	// Temporary fields used during construction
	verifier            core.TokenVerifier
	credentialsOptional bool
	tracer              trace.Tracer
}

// ExclusionURLHandler is a function that takes in a http.Request and returns
// true if the request should be excluded from JWT validation.
type ExclusionURLHandler func(r *http.Request) bool

// New constructs a new JWTMiddleware instance with the supplied options.
//
// Example:
//
//	verifier, err := token.NewVerifier(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	middleware, err := jwtauth.New(
//	    jwtauth.WithVerifier(verifier),
//	    jwtauth.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatalf("failed to create middleware: %v", err)
//	}
func New(opts ...Option) (*JWTMiddleware, error) {
	m := &JWTMiddleware{
		validateOnOptions:   true,
		credentialsOptional: false,
		scheme:              DefaultScheme,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if m.verifier == nil {
		return nil, fmt.Errorf("invalid middleware configuration: %w", ErrVerifierNil)
	}

	m.applyDefaults()

	if err := m.createCore(); err != nil {
		return nil, fmt.Errorf("failed to create core: %w", err)
	}

	return m, nil
}

// createCore creates the core.Core instance with the configured options.
func (m *JWTMiddleware) createCore() error {
	coreOpts := []core.Option{
		core.WithVerifier(m.verifier),
		core.WithCredentialsOptional(m.credentialsOptional),
	}
	if m.logger != nil {
		coreOpts = append(coreOpts, core.WithLogger(m.logger))
	}
	if m.tracer != nil {
		coreOpts = append(coreOpts, core.WithTracer(m.tracer))
	}

	c, err := core.New(coreOpts...)
	if err != nil {
		return err
	}
	m.core = c
	m.verifier = nil
	m.tracer = nil
	return nil
}

func (m *JWTMiddleware) applyDefaults() {
	if m.errorHandler == nil {
		m.errorHandler = NewErrorHandler(m.scheme)
	}
	if m.tokenExtractor == nil {
		m.tokenExtractor = AuthHeaderTokenExtractor(m.scheme)
	}
	if m.metrics == nil {
		m.metrics = &NoopMetrics{}
	}
}

// GetIdentity returns the identity the middleware attached to ctx.
//
// Example:
//
//	identity, err := jwtauth.GetIdentity(r.Context())
//	if err != nil {
//	    http.Error(w, "no identity", http.StatusInternalServerError)
//	    return
//	}
//	fmt.Println(identity["id"])
func GetIdentity(ctx context.Context) (token.Claims, error) {
	return core.GetIdentity(ctx)
}

// MustGetIdentity returns the identity attached to ctx or panics.
// Use only behind the middleware with credentials required.
func MustGetIdentity(ctx context.Context) token.Claims {
	identity, err := core.GetIdentity(ctx)
	if err != nil {
		panic(err)
	}
	return identity
}

// HasIdentity checks if an identity exists in the context.
func HasIdentity(ctx context.Context) bool {
	return core.HasIdentity(ctx)
}

// CheckJWT is the main JWTMiddleware function which performs the main logic. It
// is passed a http.Handler which will be called if the JWT passes validation.
func (m *JWTMiddleware) CheckJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exclusionURLHandler != nil && m.exclusionURLHandler(r) {
			if m.logger != nil {
				m.logger.Debug("skipping JWT validation for excluded URL",
					"method", r.Method,
					"path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}
		if !m.validateOnOptions && r.Method == http.MethodOptions {
			if m.logger != nil {
				m.logger.Debug("skipping JWT validation for OPTIONS request")
			}
			next.ServeHTTP(w, r)
			return
		}

		raw, err := m.tokenExtractor(r)
		if err != nil {
			// An extractor error means a credential was presented but could
			// not be read, which is not the same as a missing token.
			if m.logger != nil {
				m.logger.Error("failed to extract token from request",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path)
			}
			m.record("extractor_error", time.Time{})
			m.errorHandler(w, r, &extractionError{details: err})
			return
		}

		start := time.Now()
		identity, err := m.core.CheckToken(r.Context(), raw)
		if err != nil {
			m.record(core.ErrorCode(err), start)
			if m.logger != nil {
				m.logger.Warn("JWT validation failed",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path)
			}
			m.errorHandler(w, r, err)
			return
		}

		if identity == nil {
			m.record("anonymous", start)
			next.ServeHTTP(w, r)
			return
		}

		m.record("valid", start)
		next.ServeHTTP(w, r.Clone(core.SetIdentity(r.Context(), identity)))
	})
}

// record counts one request by outcome. A zero start means no verification
// ran, so no latency is observed.
func (m *JWTMiddleware) record(outcome string, start time.Time) {
	tags := map[string]string{"outcome": outcome}
	m.metrics.IncCounter(MetricValidationsTotal, tags)
	if !start.IsZero() {
		m.metrics.ObserveHistogram(MetricValidationDuration, time.Since(start).Seconds(), tags)
	}
}
