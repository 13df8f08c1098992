package token

import (
	"maps"
	"math"
	"time"
)

// Claim names written by the issuer. Caller values for iat and exp are
// always overwritten; a caller jti is kept even when WithTokenID is set.
const (
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
	ClaimTokenID   = "jti"
)

// Claims is the set of attributes describing a principal. Values must be
// JSON serializable. After a round trip through a token, JSON numbers come
// back as float64.
type Claims map[string]any

// Clone returns a shallow, key-by-key copy of c.
func (c Claims) Clone() Claims {
	if c == nil {
		return nil
	}
	return maps.Clone(c)
}

// IssuedAt returns the iat claim as a time.
func (c Claims) IssuedAt() (time.Time, bool) {
	return c.timeClaim(ClaimIssuedAt)
}

// ExpiresAt returns the exp claim as a time.
func (c Claims) ExpiresAt() (time.Time, bool) {
	return c.timeClaim(ClaimExpiresAt)
}

// String returns the named claim when it holds a string.
func (c Claims) String(name string) (string, bool) {
	s, ok := c[name].(string)
	return s, ok
}

func (c Claims) timeClaim(name string) (time.Time, bool) {
	ms, ok := numericMillis(c[name])
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// hasPrincipal reports whether c carries at least one non-reserved claim.
func (c Claims) hasPrincipal() bool {
	for k := range c {
		if k != ClaimIssuedAt && k != ClaimExpiresAt {
			return true
		}
	}
	return false
}

// numericDate renders t as Unix seconds with millisecond precision.
func numericDate(ms int64) float64 {
	return float64(ms) / 1000
}

// numericMillis converts a decoded JSON number of Unix seconds to
// milliseconds. Integral values set through Go code are accepted too.
// Values whose millisecond form does not fit in an int64 are rejected.
func numericMillis(v any) (int64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int64:
		return intMillis(n)
	case int:
		return intMillis(int64(n))
	default:
		return 0, false
	}
	ms := math.Round(f * 1000)
	if math.IsNaN(ms) || ms >= math.MaxInt64 || ms < math.MinInt64 {
		return 0, false
	}
	return int64(ms), true
}

func intMillis(secs int64) (int64, bool) {
	if secs > math.MaxInt64/1000 || secs < math.MinInt64/1000 {
		return 0, false
	}
	return secs * 1000, true
}
