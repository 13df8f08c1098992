package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/metadata"

	"github.com/signedtoken/jwtauth"
)

// TokenExtractor extracts tokens from gRPC metadata.
type TokenExtractor func(ctx context.Context) (string, error)

// ErrMultipleAuthHeaders indicates multiple authorization metadata entries were provided.
var ErrMultipleAuthHeaders = errors.New("multiple authorization metadata entries are not allowed")

// MetadataTokenExtractor extracts the token from "authorization: Bearer <token>".
var MetadataTokenExtractor = NewMetadataTokenExtractor(jwtauth.DefaultScheme)

// NewMetadataTokenExtractor returns a TokenExtractor for the "authorization"
// metadata key with the given scheme.
//
// gRPC normalizes incoming metadata keys to lowercase, so only the lowercase
// key is read. The scheme match is case-sensitive with a single space, as in
// the HTTP middleware; any other shape yields no token.
func NewMetadataTokenExtractor(scheme string) TokenExtractor {
	prefix := scheme + " "
	return func(ctx context.Context) (string, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return "", nil // No metadata, no token (not an error)
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return "", nil // No auth header (not an error)
		}

		if len(authHeaders) > 1 {
			return "", ErrMultipleAuthHeaders
		}

		raw, ok := strings.CutPrefix(authHeaders[0], prefix)
		if !ok {
			return "", nil
		}
		return raw, nil
	}
}
