// Command jwtauth issues and verifies tokens and runs a small protected API.
//
// Usage:
//
//	jwtauth issue -claims '{"id":1}' [-expiry 1h]
//	jwtauth verify <token>
//	jwtauth serve
//
// Settings come from the environment; see package config.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/signedtoken/jwtauth/config"
)

const usage = `usage: jwtauth <command> [flags]

commands:
  issue   -claims JSON [-expiry DURATION]  print a signed token
  verify  TOKEN                            print the outcome and identity
  serve                                    run the HTTP API
`

// loadFunc reads settings; tests replace it.
type loadFunc func() (config.Settings, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, func() (config.Settings, error) {
		return config.Load()
	}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, load loadFunc) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	settings, err := load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load settings: %v\n", err)
		return 1
	}

	switch args[0] {
	case "issue":
		return runIssue(args[1:], settings, stdout, stderr)
	case "verify":
		return runVerify(args[1:], settings, stdout, stderr)
	case "serve":
		return runServe(ctx, settings, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}
