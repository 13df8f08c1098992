package jwtauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/signedtoken/jwtauth/core"
	"github.com/signedtoken/jwtauth/token"
)

var (
	// ErrJWTMissing is returned when the JWT is missing.
	ErrJWTMissing = core.ErrJWTMissing

	// ErrJWTInvalid is returned when the JWT is invalid.
	ErrJWTInvalid = core.ErrJWTInvalid
)

// Rejection messages written by the default error handlers.
const (
	MessageMissing  = "You must be logged in"
	MessageExpired  = "Token expired"
	MessageInvalid  = "Invalid token"
	MessageFallback = "Invalid token or error occurred"
)

// ErrorHandler is a handler which is called when an error occurs in the
// JWTMiddleware. Among some general errors, this handler also determines the
// response of the JWTMiddleware when a token is not found or is invalid. The
// err can be checked to be ErrJWTMissing or ErrJWTInvalid for specific cases,
// and against token.ErrExpiredToken, token.ErrMalformedToken and
// token.ErrSignatureMismatch for the precise reason.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// ErrorResponse is the JSON body written for a rejected request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody holds the rejection message.
type ErrorBody struct {
	Message string `json:"message"`
}

// RejectionMessage returns the client-facing message for err.
func RejectionMessage(err error) string {
	switch {
	case errors.Is(err, ErrJWTMissing), errors.Is(err, token.ErrMissingCredential):
		return MessageMissing
	case errors.Is(err, token.ErrExpiredToken):
		return MessageExpired
	case errors.Is(err, token.ErrInvalidToken):
		return MessageInvalid
	default:
		return MessageFallback
	}
}

// DefaultErrorHandler is the default error handler implementation for the
// JWTMiddleware when the Bearer scheme is in use.
var DefaultErrorHandler = NewErrorHandler(DefaultScheme)

// NewErrorHandler returns the default error handler for scheme. Every
// rejection is a 401 with an ErrorResponse body and an RFC 6750 style
// WWW-Authenticate challenge.
func NewErrorHandler(scheme string) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("WWW-Authenticate", challenge(scheme, err))
		w.WriteHeader(http.StatusUnauthorized)

		body, _ := json.Marshal(ErrorResponse{Error: ErrorBody{Message: RejectionMessage(err)}})
		_, _ = w.Write(body)
	}
}

// challenge builds the WWW-Authenticate value. A missing token gets a bare
// challenge; rejected tokens carry an error code and description.
func challenge(scheme string, err error) string {
	var code, description string
	switch {
	case errors.Is(err, ErrJWTMissing), errors.Is(err, token.ErrMissingCredential):
		return scheme
	case errors.Is(err, token.ErrExpiredToken):
		code, description = "invalid_token", "The access token expired"
	case errors.Is(err, token.ErrSignatureMismatch):
		code, description = "invalid_token", "The access token signature is invalid"
	case errors.Is(err, token.ErrMalformedToken):
		code, description = "invalid_request", "The access token is malformed"
	default:
		code, description = "invalid_token", "The access token is invalid"
	}
	return fmt.Sprintf(`%s error=%q, error_description=%q`, scheme, code, description)
}

// extractionError marks a failure inside a TokenExtractor. It matches
// ErrJWTInvalid, since a credential was presented but could not be read.
type extractionError struct {
	details error
}

func (e *extractionError) Is(target error) bool {
	return target == ErrJWTInvalid
}

func (e *extractionError) Error() string {
	return fmt.Sprintf("error extracting token: %s", e.details)
}

func (e *extractionError) Unwrap() error {
	return e.details
}
