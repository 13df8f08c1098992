package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jws"
)

// Verifier checks tokens produced by an Issuer sharing the same Config.
// It is safe for concurrent use.
type Verifier struct {
	settings *settings
	now      func() time.Time
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier) error

// WithVerifierClock replaces time.Now as the reference for expiry checks.
func WithVerifierClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		v.now = now
		return nil
	}
}

// NewVerifier returns a Verifier bound to cfg. cfg must already be configured.
func NewVerifier(cfg *Config, opts ...VerifierOption) (*Verifier, error) {
	s, err := cfg.load()
	if err != nil {
		return nil, err
	}

	v := &Verifier{settings: s, now: time.Now}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid verifier option: %w", err)
		}
	}
	return v, nil
}

type header struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

// Verify classifies raw. The checks run in a fixed order: presence,
// structure, signature, expiry. A token whose signature does not verify is
// never reported as Expired.
func (v *Verifier) Verify(raw string) Outcome {
	if strings.TrimSpace(raw) == "" {
		return Missing{}
	}

	claims, alg, sig, ok := decode(raw)
	if !ok {
		return Invalid{Reason: ReasonMalformed}
	}

	if alg != Algorithm.String() {
		return Invalid{Reason: ReasonSignatureMismatch}
	}
	// The HMAC is computed over the segments as received, so only the
	// canonical encoding of a signature can be accepted.
	if base64.RawURLEncoding.EncodeToString(sig) != raw[strings.LastIndexByte(raw, '.')+1:] {
		return Invalid{Reason: ReasonSignatureMismatch}
	}
	if _, err := jws.Verify([]byte(raw), jws.WithKey(Algorithm, v.settings.secret)); err != nil {
		return Invalid{Reason: ReasonSignatureMismatch}
	}

	exp, _ := numericMillis(claims[ClaimExpiresAt])
	if v.now().UnixMilli() >= exp {
		return Expired{}
	}

	return Valid{Identity: claims}
}

// decode splits raw into its three segments and decodes the header and
// payload. It reports false for anything that is not structurally a token.
func decode(raw string) (Claims, string, []byte, bool) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, "", nil, false
	}
	for _, p := range parts {
		if p == "" {
			return nil, "", nil, false
		}
	}

	rawHeader, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, "", nil, false
	}
	var h header
	if err := json.Unmarshal(rawHeader, &h); err != nil || h.Algorithm == "" {
		return nil, "", nil, false
	}

	rawPayload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", nil, false
	}
	var claims Claims
	if err := json.Unmarshal(rawPayload, &claims); err != nil || claims == nil {
		return nil, "", nil, false
	}
	if _, ok := numericMillis(claims[ClaimExpiresAt]); !ok {
		return nil, "", nil, false
	}
	if iat, present := claims[ClaimIssuedAt]; present {
		if _, ok := numericMillis(iat); !ok {
			return nil, "", nil, false
		}
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, "", nil, false
	}

	return claims, h.Algorithm, sig, true
}
