package grpc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/signedtoken/jwtauth/token"
)

const testMethod = "/test.Service/Method"

type fixture struct {
	issuer   *token.Issuer
	verifier *token.Verifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg, err := token.NewConfig("grpc-secret", "1h")
	require.NoError(t, err)
	issuer, err := token.NewIssuer(cfg)
	require.NoError(t, err)
	verifier, err := token.NewVerifier(cfg)
	require.NoError(t, err)
	return fixture{issuer: issuer, verifier: verifier}
}

func (f fixture) token(t *testing.T) string {
	t.Helper()

	raw, err := f.issuer.Issue(token.Claims{"id": 1})
	require.NoError(t, err)
	return raw
}

func withBearer(raw string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+raw))
}

// mockLogger is a mock implementation of Logger for testing.
type mockLogger struct {
	debugCalls, infoCalls, warnCalls, errorCalls []string
}

func (m *mockLogger) Debug(msg string, args ...any) { m.debugCalls = append(m.debugCalls, msg) }
func (m *mockLogger) Info(msg string, args ...any)  { m.infoCalls = append(m.infoCalls, msg) }
func (m *mockLogger) Warn(msg string, args ...any)  { m.warnCalls = append(m.warnCalls, msg) }
func (m *mockLogger) Error(msg string, args ...any) { m.errorCalls = append(m.errorCalls, msg) }

func TestNew_InvalidConfiguration(t *testing.T) {
	f := newFixture(t)

	testCases := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{name: "missing verifier", wantErr: "verifier is required"},
		{name: "nil verifier", opts: []Option{WithVerifier(nil)}, wantErr: "verifier cannot be nil"},
		{name: "nil logger", opts: []Option{WithVerifier(f.verifier), WithLogger(nil)}, wantErr: "logger cannot be nil"},
		{name: "nil tracer", opts: []Option{WithVerifier(f.verifier), WithTracer(nil)}, wantErr: "tracer cannot be nil"},
		{name: "empty scheme", opts: []Option{WithVerifier(f.verifier), WithScheme("")}, wantErr: "scheme cannot be empty"},
		{name: "nil extractor", opts: []Option{WithVerifier(f.verifier), WithTokenExtractor(nil)}, wantErr: "token extractor cannot be nil"},
		{name: "nil error handler", opts: []Option{WithVerifier(f.verifier), WithErrorHandler(nil)}, wantErr: "error handler cannot be nil"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			interceptor, err := New(testCase.opts...)
			require.Error(t, err)
			assert.Nil(t, interceptor)
			assert.Contains(t, err.Error(), testCase.wantErr)
		})
	}
}

func TestUnaryServerInterceptor(t *testing.T) {
	f := newFixture(t)
	raw := f.token(t)

	expiredIssuer, err := token.NewIssuer(mustConfig(t), token.WithIssuerClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}))
	require.NoError(t, err)
	expired, err := expiredIssuer.Issue(token.Claims{"id": 1})
	require.NoError(t, err)

	interceptor, err := New(WithVerifier(f.verifier))
	require.NoError(t, err)

	testCases := []struct {
		name    string
		ctx     context.Context
		wantMsg string
	}{
		{name: "valid token", ctx: withBearer(raw)},
		{name: "missing token", ctx: context.Background(), wantMsg: "You must be logged in"},
		{name: "wrong scheme", ctx: metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic "+raw)), wantMsg: "You must be logged in"},
		{name: "tampered token", ctx: withBearer(raw[:strings.LastIndex(raw, ".")+1] + "AAAA"), wantMsg: "Invalid token"},
		{name: "malformed token", ctx: withBearer("nope"), wantMsg: "Invalid token"},
		{name: "expired token", ctx: withBearer(expired), wantMsg: "Token expired"},
		{
			name: "duplicate authorization metadata",
			ctx: metadata.NewIncomingContext(context.Background(),
				metadata.Pairs("authorization", "Bearer "+raw, "authorization", "Bearer "+raw)),
			wantMsg: "Invalid token or error occurred",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			called := false
			handler := func(ctx context.Context, req any) (any, error) {
				called = true
				identity, err := GetIdentity(ctx)
				require.NoError(t, err)
				assert.Equal(t, float64(1), identity["id"])
				return "success", nil
			}

			resp, err := interceptor.UnaryServerInterceptor()(testCase.ctx, nil, &grpc.UnaryServerInfo{FullMethod: testMethod}, handler)

			if testCase.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, "success", resp)
				assert.True(t, called)
				return
			}
			assert.False(t, called)
			assert.Nil(t, resp)
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, codes.Unauthenticated, st.Code())
			assert.Equal(t, testCase.wantMsg, st.Message())
		})
	}
}

func TestUnaryServerInterceptor_ExcludedMethod(t *testing.T) {
	f := newFixture(t)
	logger := &mockLogger{}
	interceptor, err := New(
		WithVerifier(f.verifier),
		WithExcludedMethods("/grpc.health.v1.Health/Check"),
		WithLogger(logger),
	)
	require.NoError(t, err)

	handler := func(ctx context.Context, req any) (any, error) {
		assert.False(t, HasIdentity(ctx))
		return "ok", nil
	}

	resp, err := interceptor.UnaryServerInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Len(t, logger.debugCalls, 1)
}

func TestUnaryServerInterceptor_CredentialsOptional(t *testing.T) {
	f := newFixture(t)
	interceptor, err := New(WithVerifier(f.verifier), WithCredentialsOptional(true))
	require.NoError(t, err)

	handler := func(ctx context.Context, req any) (any, error) {
		assert.False(t, HasIdentity(ctx))
		return "anonymous", nil
	}

	resp, err := interceptor.UnaryServerInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: testMethod}, handler)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", resp)
}

func TestUnaryServerInterceptor_CustomOptions(t *testing.T) {
	f := newFixture(t)
	raw := f.token(t)

	t.Run("custom scheme", func(t *testing.T) {
		interceptor, err := New(
			WithVerifier(f.verifier),
			WithScheme("Token"),
			WithTracer(noop.NewTracerProvider().Tracer("test")),
		)
		require.NoError(t, err)

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Token "+raw))
		_, err = interceptor.UnaryServerInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: testMethod},
			func(ctx context.Context, req any) (any, error) { return nil, nil })
		assert.NoError(t, err)
	})

	t.Run("custom extractor", func(t *testing.T) {
		interceptor, err := New(
			WithVerifier(f.verifier),
			WithTokenExtractor(func(ctx context.Context) (string, error) { return raw, nil }),
		)
		require.NoError(t, err)

		_, err = interceptor.UnaryServerInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: testMethod},
			func(ctx context.Context, req any) (any, error) { return nil, nil })
		assert.NoError(t, err)
	})

	t.Run("custom error handler", func(t *testing.T) {
		interceptor, err := New(
			WithVerifier(f.verifier),
			WithErrorHandler(func(err error) error {
				return status.Error(codes.PermissionDenied, err.Error())
			}),
		)
		require.NoError(t, err)

		_, err = interceptor.UnaryServerInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: testMethod},
			func(ctx context.Context, req any) (any, error) { return nil, nil })
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})
}

// mockServerStream implements grpc.ServerStream for testing.
type mockServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (m *mockServerStream) Context() context.Context {
	return m.ctx
}

func TestStreamServerInterceptor(t *testing.T) {
	f := newFixture(t)
	raw := f.token(t)
	interceptor, err := New(WithVerifier(f.verifier))
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		handler := func(srv any, stream grpc.ServerStream) error {
			identity, err := GetIdentity(stream.Context())
			require.NoError(t, err)
			assert.Equal(t, float64(1), identity["id"])
			return nil
		}

		err := interceptor.StreamServerInterceptor()(nil, &mockServerStream{ctx: withBearer(raw)}, &grpc.StreamServerInfo{FullMethod: testMethod}, handler)
		assert.NoError(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		handler := func(srv any, stream grpc.ServerStream) error {
			return errors.New("handler should not be called")
		}

		err := interceptor.StreamServerInterceptor()(nil, &mockServerStream{ctx: context.Background()}, &grpc.StreamServerInfo{FullMethod: testMethod}, handler)
		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, codes.Unauthenticated, st.Code())
		assert.Equal(t, "You must be logged in", st.Message())
	})
}

func TestDefaultErrorHandler(t *testing.T) {
	assert.NoError(t, DefaultErrorHandler(nil))

	err := DefaultErrorHandler(token.ErrExpiredToken)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	st, _ := status.FromError(err)
	assert.Equal(t, "Token expired", st.Message())
}

func mustConfig(t *testing.T) *token.Config {
	t.Helper()

	cfg, err := token.NewConfig("grpc-secret", "1h")
	require.NoError(t, err)
	return cfg
}
