package token

// Outcome is the result of Verify. It is closed: the only implementations are
// Valid, Expired, Invalid and Missing.
type Outcome interface {
	// String names the outcome for logs and metrics.
	String() string
	outcome()
}

// InvalidReason says why a token was rejected as invalid.
type InvalidReason string

const (
	// ReasonMalformed means the token could not be decoded.
	ReasonMalformed InvalidReason = "malformed"
	// ReasonSignatureMismatch means the signature did not verify.
	ReasonSignatureMismatch InvalidReason = "signature_mismatch"
)

// Valid carries the decoded payload of an accepted token, including the
// reserved iat and exp claims.
type Valid struct {
	Identity Claims
}

// Expired means the signature verified but the token is past its exp.
type Expired struct{}

// Invalid means the token is malformed or its signature does not verify.
type Invalid struct {
	Reason InvalidReason
}

// Missing means no token was presented.
type Missing struct{}

func (Valid) outcome()   {}
func (Expired) outcome() {}
func (Invalid) outcome() {}
func (Missing) outcome() {}

func (Valid) String() string     { return "valid" }
func (Expired) String() string   { return "expired" }
func (o Invalid) String() string { return "invalid_" + string(o.Reason) }
func (Missing) String() string   { return "missing" }

// Err returns the sentinel error matching o, or nil for Valid.
func Err(o Outcome) error {
	switch v := o.(type) {
	case Valid:
		return nil
	case Expired:
		return ErrExpiredToken
	case Invalid:
		if v.Reason == ReasonSignatureMismatch {
			return ErrSignatureMismatch
		}
		return ErrMalformedToken
	case Missing:
		return ErrMissingCredential
	default:
		return ErrMalformedToken
	}
}
