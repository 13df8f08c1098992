package jwtecho

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signedtoken/jwtauth"
	"github.com/signedtoken/jwtauth/core"
	"github.com/signedtoken/jwtauth/token"
)

func setup(t *testing.T, opts ...Option) (*echo.Echo, string) {
	t.Helper()

	cfg, err := token.NewConfig("echo-secret", "1h")
	require.NoError(t, err)
	issuer, err := token.NewIssuer(cfg)
	require.NoError(t, err)
	verifier, err := token.NewVerifier(cfg)
	require.NoError(t, err)
	c, err := core.New(core.WithVerifier(verifier))
	require.NoError(t, err)

	raw, err := issuer.Issue(token.Claims{"id": 7})
	require.NoError(t, err)

	e := echo.New()
	e.Use(New(c, opts...))
	e.GET("/me", func(ctx echo.Context) error {
		identity, ok := GetIdentity(ctx, "")
		if !ok {
			return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "no identity"})
		}
		fromRequest, err := jwtauth.GetIdentity(ctx.Request().Context())
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, map[string]any{"id": identity["id"], "same": fromRequest["id"] == identity["id"]})
	})
	return e, raw
}

func TestNew(t *testing.T) {
	e, raw := setup(t)

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "it accepts a valid token",
			header:     "Bearer " + raw,
			wantStatus: http.StatusOK,
			wantBody:   `{"id":7,"same":true}`,
		},
		{
			name:       "it rejects a missing token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":{"message":"You must be logged in"}}`,
		},
		{
			name:       "it rejects a tampered token",
			header:     "Bearer " + raw[:strings.LastIndex(raw, ".")+1] + "AAAA",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":{"message":"Invalid token"}}`,
		},
		{
			name:       "it rejects a malformed token",
			header:     "Bearer a.b",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":{"message":"Invalid token"}}`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/me", nil)
			if testCase.header != "" {
				request.Header.Set("Authorization", testCase.header)
			}
			recorder := httptest.NewRecorder()
			e.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.wantStatus, recorder.Code)
			assert.JSONEq(t, testCase.wantBody, recorder.Body.String())
		})
	}
}

func TestNew_HTTPErrorHandler(t *testing.T) {
	e, _ := setup(t, WithErrorHandler(func(ctx echo.Context, err error) error {
		return echo.NewHTTPError(http.StatusForbidden, core.ErrorCode(err))
	}))

	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.JSONEq(t, `{"message":"token_missing"}`, recorder.Body.String())
}

func TestNew_CustomContextKey(t *testing.T) {
	e, raw := setup(t, WithContextKey("user"))

	e.GET("/user", func(ctx echo.Context) error {
		identity, ok := GetIdentity(ctx, "user")
		if !ok {
			return ctx.NoContent(http.StatusInternalServerError)
		}
		return ctx.JSON(http.StatusOK, identity["id"])
	})

	request := httptest.NewRequest(http.MethodGet, "/user", nil)
	request.Header.Set("Authorization", "Bearer "+raw)
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "7\n", recorder.Body.String())
}
