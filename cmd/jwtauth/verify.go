package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signedtoken/jwtauth"
	"github.com/signedtoken/jwtauth/config"
	"github.com/signedtoken/jwtauth/token"
)

// verifyResult is printed as one JSON line.
type verifyResult struct {
	Outcome  string       `json:"outcome"`
	Message  string       `json:"message,omitempty"`
	Identity token.Claims `json:"identity,omitempty"`
}

func runVerify(args []string, settings config.Settings, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: jwtauth verify TOKEN")
		return 2
	}

	cfg, err := settings.TokenConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	verifier, err := token.NewVerifier(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	outcome := verifier.Verify(args[0])
	result := verifyResult{Outcome: outcome.String()}
	if valid, ok := outcome.(token.Valid); ok {
		result.Identity = valid.Identity
	} else {
		result.Message = jwtauth.RejectionMessage(token.Err(outcome))
	}

	if err := json.NewEncoder(stdout).Encode(result); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if result.Identity == nil {
		return 1
	}
	return 0
}
