/*
Package token issues and verifies self-contained, HMAC-signed credential tokens.

A token is the compact serialization of three base64url segments:

	header.payload.signature

The header is {"alg":"HS256","typ":"JWT"}, the payload carries the caller's
claims plus the reserved iat and exp timestamps (Unix seconds, millisecond
precision), and the signature is HMAC-SHA256 over "header.payload" keyed with
the secret held by a Config.

# Configuration

A Config is configured exactly once. A second Configure call fails with
ErrAlreadyConfigured so the secret cannot be swapped underneath running
issuers and verifiers:

	cfg, err := token.NewConfig(os.Getenv("JWT_SECRET"), "1h")
	if err != nil {
	    log.Fatal(err)
	}

# Issuing

	issuer, err := token.NewIssuer(cfg)
	if err != nil {
	    log.Fatal(err)
	}
	raw, err := issuer.Issue(token.Claims{"id": 1, "role": "admin"})

Caller claims named iat or exp are replaced by the issuer's values.

# Verifying

Verify never returns an error. It returns one of four Outcome variants and
callers are expected to switch on all of them:

	switch o := verifier.Verify(raw).(type) {
	case token.Valid:
	    fmt.Println(o.Identity["role"])
	case token.Expired:
	    // ask the client to log in again
	case token.Invalid:
	    fmt.Println(o.Reason)
	case token.Missing:
	    // no credential supplied
	}

Verification consults nothing but the token, the Config and the clock. There
is no revocation list and no session table.
*/
package token
