package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/signedtoken/jwtauth/config"
	"github.com/signedtoken/jwtauth/token"
)

func runIssue(args []string, settings config.Settings, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("issue", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		claimsJSON = fs.String("claims", "", "identity claims as a JSON object")
		expiry     = fs.String("expiry", "", "token lifetime; defaults to JWT_EXPIRES_IN")
		withID     = fs.Bool("jti", false, "add a random jti claim")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *claimsJSON == "" {
		fmt.Fprintln(stderr, "-claims is required")
		return 2
	}

	claims, err := decodeClaims(*claimsJSON)
	if err != nil {
		fmt.Fprintf(stderr, "invalid -claims: %v\n", err)
		return 2
	}

	cfg, err := settings.TokenConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var opts []token.IssuerOption
	if *withID {
		opts = append(opts, token.WithTokenID())
	}
	issuer, err := token.NewIssuer(cfg, opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	lifetime := cfg.DefaultExpiry()
	if *expiry != "" {
		lifetime, err = token.ParseExpiry(*expiry)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -expiry: %v\n", err)
			return 2
		}
	}

	raw, err := issuer.IssueWithExpiry(claims, lifetime)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, raw)
	return 0
}

// decodeClaims parses a JSON object, keeping numbers as float64 like the
// verifier does.
func decodeClaims(s string) (token.Claims, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	var claims token.Claims
	if err := dec.Decode(&claims); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON object")
	}
	return claims, nil
}
