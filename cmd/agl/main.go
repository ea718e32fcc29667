// Package main provides the entry point for the agl diagnostic CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/agl-team/agl-go/internal/cli"
)

func main() {
	// Local .env is optional; absence is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
