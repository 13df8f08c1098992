package grpc

import (
	"errors"

	"go.opentelemetry.io/otel/trace"

	"github.com/signedtoken/jwtauth/core"
)

// Option configures the interceptor.
type Option func(*JWTInterceptor) error

// Logger defines an optional logging interface compatible with log/slog.
// This is the same interface used by core for consistent logging across the stack.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var errVerifierRequired = errors.New("verifier is required, use WithVerifier option")

// coreBuilder helps build a core.Core with accumulated options.
type coreBuilder struct {
	verifier            core.TokenVerifier
	credentialsOptional bool
	logger              Logger
	tracer              trace.Tracer
	scheme              string
}

func (b *coreBuilder) build() (*core.Core, error) {
	if b.verifier == nil {
		return nil, errVerifierRequired
	}

	opts := []core.Option{
		core.WithVerifier(b.verifier),
		core.WithCredentialsOptional(b.credentialsOptional),
	}
	if b.logger != nil {
		opts = append(opts, core.WithLogger(b.logger))
	}
	if b.tracer != nil {
		opts = append(opts, core.WithTracer(b.tracer))
	}

	return core.New(opts...)
}

// WithVerifier sets the token verifier (REQUIRED).
//
// Example:
//
//	interceptor, _ := jwtgrpc.New(
//	    jwtgrpc.WithVerifier(verifier),
//	    jwtgrpc.WithCredentialsOptional(true),
//	)
func WithVerifier(v core.TokenVerifier) Option {
	return func(i *JWTInterceptor) error {
		if v == nil {
			return errors.New("verifier cannot be nil")
		}
		i.coreBuilder.verifier = v
		return nil
	}
}

// WithCredentialsOptional allows requests without tokens to proceed.
// The context then carries no identity.
//
// Default: false (credentials required)
func WithCredentialsOptional(optional bool) Option {
	return func(i *JWTInterceptor) error {
		i.coreBuilder.credentialsOptional = optional
		return nil
	}
}

// WithLogger sets an optional logger for the interceptor and its core.
func WithLogger(logger Logger) Option {
	return func(i *JWTInterceptor) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		i.coreBuilder.logger = logger
		i.logger = logger
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer used by the core.
func WithTracer(tracer trace.Tracer) Option {
	return func(i *JWTInterceptor) error {
		if tracer == nil {
			return errors.New("tracer cannot be nil")
		}
		i.coreBuilder.tracer = tracer
		return nil
	}
}

// WithScheme sets the scheme read by the default metadata extractor.
// It has no effect when WithTokenExtractor is also used.
//
// Default: "Bearer"
func WithScheme(scheme string) Option {
	return func(i *JWTInterceptor) error {
		if scheme == "" {
			return errors.New("scheme cannot be empty")
		}
		i.coreBuilder.scheme = scheme
		return nil
	}
}

// WithTokenExtractor sets a custom token extractor function.
// Default is MetadataTokenExtractor which extracts from "authorization" metadata.
func WithTokenExtractor(extractor TokenExtractor) Option {
	return func(i *JWTInterceptor) error {
		if extractor == nil {
			return errors.New("token extractor cannot be nil")
		}
		i.tokenExtractor = extractor
		return nil
	}
}

// WithErrorHandler sets a custom error handler function.
// Default is DefaultErrorHandler which maps errors to gRPC status codes.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(i *JWTInterceptor) error {
		if handler == nil {
			return errors.New("error handler cannot be nil")
		}
		i.errorHandler = handler
		return nil
	}
}

// WithExcludedMethods excludes specific gRPC methods from validation.
// Methods should be provided in the format: "/package.Service/Method"
// Example: "/myapp.MyService/PublicMethod", "/grpc.health.v1.Health/Check"
func WithExcludedMethods(methods ...string) Option {
	return func(i *JWTInterceptor) error {
		for _, method := range methods {
			i.excludedMethods[method] = true
		}
		return nil
	}
}
