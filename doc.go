/*
Package jwtauth provides HTTP middleware for stateless token authentication.

Tokens are HS256-signed JWTs minted by token.Issuer from a shared secret and
checked by token.Verifier. The middleware extracts the token from a request,
verifies it, and attaches the decoded identity to the request context. It
follows the Core-Adapter pattern, with this package serving as the net/http
adapter around the core package.

# Quick Start

	import (
	    "github.com/signedtoken/jwtauth"
	    "github.com/signedtoken/jwtauth/token"
	)

	func main() {
	    cfg, err := token.NewConfig(os.Getenv("JWT_SECRET"), "24h")
	    if err != nil {
	        log.Fatal(err)
	    }

	    verifier, err := token.NewVerifier(cfg)
	    if err != nil {
	        log.Fatal(err)
	    }

	    middleware, err := jwtauth.New(
	        jwtauth.WithVerifier(verifier),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    http.Handle("/api/", middleware.CheckJWT(apiHandler))
	    http.ListenAndServe(":8080", nil)
	}

# Accessing the Identity

	func apiHandler(w http.ResponseWriter, r *http.Request) {
	    identity, err := jwtauth.GetIdentity(r.Context())
	    if err != nil {
	        http.Error(w, "Unauthorized", http.StatusUnauthorized)
	        return
	    }
	    fmt.Fprintf(w, "Hello, %v!", identity["id"])
	}

The identity is the signed payload, so it includes iat and exp.

# Request Flow

The middleware reads "Authorization: <scheme> <token>". The scheme is
"Bearer" unless WithScheme says otherwise; the match is case-sensitive and
needs exactly one space. A header that does not have that shape counts as no
token at all.

	no token          401 {"error":{"message":"You must be logged in"}}
	expired token     401 {"error":{"message":"Token expired"}}
	invalid token     401 {"error":{"message":"Invalid token"}}
	anything else     401 {"error":{"message":"Invalid token or error occurred"}}

Each rejection also carries a WWW-Authenticate challenge. The next handler is
never called for a rejected request, and rejections are not retried.

# Configuration Options

	jwtauth.WithVerifier(v)               required
	jwtauth.WithScheme("Token")           Authorization scheme
	jwtauth.WithCredentialsOptional(true) let anonymous requests through
	jwtauth.WithValidateOnOptions(false)  skip CORS preflight requests
	jwtauth.WithExclusionUrls(paths)      skip listed paths or URLs
	jwtauth.WithTokenExtractor(ex)        read the token from elsewhere
	jwtauth.WithErrorHandler(h)           write custom rejections
	jwtauth.WithLogger(l)                 slog-compatible logger
	jwtauth.WithTracer(t)                 OpenTelemetry tracer
	jwtauth.WithMetrics(m)                Prometheus or custom metrics

# Logging and Metrics

Any *slog.Logger satisfies Logger; NewLogrusLogger adapts a logrus logger.
Tokens and secrets are never logged.

NewPrometheusMetrics records jwtauth_validations_total and
jwtauth_validation_duration_seconds, both labelled by outcome, on the
registerer it is given.

# Other Frameworks

See framework/gin, framework/echo and integrations/grpc for adapters that
share the same core and produce the same rejection messages.
*/
package jwtauth
