package token

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
)

const (
	// Algorithm is the only signature algorithm issued and accepted.
	Algorithm = jwa.HS256

	// Type is the typ header value.
	Type = "JWT"
)

// Issuer turns claims into signed tokens. It is safe for concurrent use.
type Issuer struct {
	settings *settings
	now      func() time.Time
	tokenID  bool
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer) error

// WithIssuerClock replaces time.Now as the source of iat.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		i.now = now
		return nil
	}
}

// WithTokenID adds a random jti claim to every issued token whose claims do
// not already carry one. A caller-supplied jti is left in place.
func WithTokenID() IssuerOption {
	return func(i *Issuer) error {
		i.tokenID = true
		return nil
	}
}

// NewIssuer returns an Issuer bound to cfg. cfg must already be configured.
func NewIssuer(cfg *Config, opts ...IssuerOption) (*Issuer, error) {
	s, err := cfg.load()
	if err != nil {
		return nil, err
	}

	i := &Issuer{settings: s, now: time.Now}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("invalid issuer option: %w", err)
		}
	}
	return i, nil
}

// Issue signs claims with the configured default expiry.
func (i *Issuer) Issue(claims Claims) (string, error) {
	return i.IssueWithExpiry(claims, i.settings.expiry)
}

// IssueWithExpiry signs claims with the given lifetime.
//
// The payload is a copy of claims with iat set to the current time and exp
// set to iat plus expiry. Caller values for iat and exp are replaced.
func (i *Issuer) IssueWithExpiry(claims Claims, expiry time.Duration) (string, error) {
	if !claims.hasPrincipal() {
		return "", ErrMissingPrincipal
	}
	if expiry < MinExpiry {
		return "", fmt.Errorf("%w: %s is shorter than %s", ErrInvalidExpiry, expiry, MinExpiry)
	}

	iat := i.now().UnixMilli()
	exp := iat + expiry.Milliseconds()

	payload := claims.Clone()
	payload[ClaimIssuedAt] = numericDate(iat)
	payload[ClaimExpiresAt] = numericDate(exp)
	if _, ok := payload[ClaimTokenID]; i.tokenID && !ok {
		payload[ClaimTokenID] = uuid.NewString()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}

	headers := jws.NewHeaders()
	if err := headers.Set(jws.TypeKey, Type); err != nil {
		return "", fmt.Errorf("failed to set token header: %w", err)
	}

	signed, err := jws.Sign(body, jws.WithKey(Algorithm, i.settings.secret, jws.WithProtectedHeaders(headers)))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}
