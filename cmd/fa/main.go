// Package main is the entry point for the fa CLI.
package main

import (
	"os"

	"github.com/ledgerline/freeagent-cli/cmd/fa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
