package token

import "errors"

var (
	// ErrMissingCredential is reported when no token was presented.
	ErrMissingCredential = errors.New("token: missing credential")

	// ErrInvalidToken is the parent of ErrMalformedToken and ErrSignatureMismatch.
	ErrInvalidToken = errors.New("token: invalid token")

	// ErrMalformedToken is reported when the token is structurally broken.
	ErrMalformedToken = &invalidTokenError{reason: ReasonMalformed}

	// ErrSignatureMismatch is reported when the token was tampered with or
	// signed with a different secret.
	ErrSignatureMismatch = &invalidTokenError{reason: ReasonSignatureMismatch}

	// ErrExpiredToken is reported when the token is past its exp.
	ErrExpiredToken = errors.New("token: token expired")

	// ErrMissingPrincipal is returned by the issuer when there are no claims to sign.
	ErrMissingPrincipal = errors.New("token: missing principal claims")

	// ErrInvalidClaims is returned by the issuer when the claims cannot be serialized.
	ErrInvalidClaims = errors.New("token: claims are not JSON serializable")

	// ErrAlreadyConfigured is returned when a Config is configured twice.
	ErrAlreadyConfigured = errors.New("token: already configured")

	// ErrNotConfigured is returned when an issuer or verifier is built on an
	// unconfigured Config.
	ErrNotConfigured = errors.New("token: not configured")

	// ErrEmptySecret is returned when the signing secret is empty.
	ErrEmptySecret = errors.New("token: signing secret cannot be empty")

	// ErrInvalidExpiry is returned for unparsable or non-positive expiry values.
	ErrInvalidExpiry = errors.New("token: invalid expiry")
)

// invalidTokenError lets both invalid-token sentinels match ErrInvalidToken
// with errors.Is while staying distinguishable from each other.
type invalidTokenError struct {
	reason InvalidReason
}

func (e *invalidTokenError) Error() string {
	return ErrInvalidToken.Error() + ": " + string(e.reason)
}

func (e *invalidTokenError) Is(target error) bool {
	return target == ErrInvalidToken
}
