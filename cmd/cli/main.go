// Package main is the entry point for the washplane CLI.
// The CLI is the front-desk terminal tool for interacting with the washplane API.
package main

import (
	"os"

	"washplane/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
