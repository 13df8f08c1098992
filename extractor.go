package jwtauth

import (
	"net/http"
	"strings"
)

// DefaultScheme is the authorization scheme expected in front of the token.
const DefaultScheme = "Bearer"

// TokenExtractor is a function that takes a request as input and returns
// either a token or an error. An error should only be returned if an attempt
// to specify a token was found, but the information was somehow incorrectly
// formed. In the case where a token is simply not present, this should not
// be treated as an error. An empty string should be returned in that case.
type TokenExtractor func(r *http.Request) (string, error)

// AuthHeaderTokenExtractor builds a TokenExtractor that reads the token from
// an Authorization header of the form "<scheme> <token>".
//
// The scheme match is case-sensitive and must be followed by exactly one
// space. A header with any other shape yields no token, so the request is
// treated as unauthenticated rather than as an extraction failure.
func AuthHeaderTokenExtractor(scheme string) TokenExtractor {
	prefix := scheme + " "
	return func(r *http.Request) (string, error) {
		return schemeToken(r.Header.Get("Authorization"), prefix), nil
	}
}

func schemeToken(header, prefix string) string {
	raw, ok := strings.CutPrefix(header, prefix)
	if !ok {
		return ""
	}
	return raw
}

// CookieTokenExtractor builds a TokenExtractor that takes a request and
// extracts the token from the cookie using the passed in cookieName.
func CookieTokenExtractor(cookieName string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(cookieName)
		if err == http.ErrNoCookie {
			return "", nil // No cookie, then no JWT, so no error.
		}
		if err != nil {
			return "", err
		}

		return cookie.Value, nil
	}
}

// ParameterTokenExtractor returns a TokenExtractor that extracts
// the token from the specified query string parameter.
func ParameterTokenExtractor(param string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		return r.URL.Query().Get(param), nil
	}
}

// MultiTokenExtractor returns a TokenExtractor that runs multiple TokenExtractors
// and takes the one that does not return an empty token. If a TokenExtractor
// returns an error that error is immediately returned.
func MultiTokenExtractor(extractors ...TokenExtractor) TokenExtractor {
	return func(r *http.Request) (string, error) {
		for _, ex := range extractors {
			token, err := ex(r)
			if err != nil {
				return "", err
			}

			if token != "" {
				return token, nil
			}
		}
		return "", nil
	}
}
