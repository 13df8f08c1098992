/*
Package core provides framework-agnostic token checking that can be used
across different transport layers (HTTP, gRPC, etc.).

The core package implements the "Core" in the Core-Adapter pattern:

	┌─────────────────────────────────────────────┐
	│         Transport Adapters                  │
	│  (net/http, Gin, Echo, gRPC)                │
	└────────────────┬────────────────────────────┘
	                 │
	                 ▼
	┌─────────────────────────────────────────────┐
	│          Core Engine (THIS PACKAGE)         │
	│  • Outcome to error mapping                 │
	│  • Credentials Optional Logic               │
	│  • Logger and Tracer Integration            │
	└────────────────┬────────────────────────────┘
	                 │
	                 ▼
	┌─────────────────────────────────────────────┐
	│          token.Verifier                     │
	│  (Decoding, Signature, Expiry)              │
	└─────────────────────────────────────────────┘

# Basic Usage

	cfg, err := token.NewConfig(secret, "24h")
	if err != nil {
	    log.Fatal(err)
	}
	verifier, err := token.NewVerifier(cfg)
	if err != nil {
	    log.Fatal(err)
	}

	c, err := core.New(core.WithVerifier(verifier))
	if err != nil {
	    log.Fatal(err)
	}

	identity, err := c.CheckToken(ctx, raw)
	if err != nil {
	    // errors.Is(err, core.ErrJWTMissing) or errors.Is(err, core.ErrJWTInvalid)
	}

# Error Codes

Rejected tokens come back as *ValidationError:

	token_expired      the signature verified but exp has passed
	token_malformed    the token could not be decoded
	invalid_signature  the signature does not verify with the configured secret

ValidationError unwraps to the matching token package sentinel, so
errors.Is(err, token.ErrExpiredToken) works as well.

# Identity Context

Adapters store the identity with SetIdentity; handlers read it back with
GetIdentity or HasIdentity.
*/
package core
