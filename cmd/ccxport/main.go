// Package main provides the entry point for the ccxport CLI.
package main

import (
	"os"

	"github.com/randalmurphal/ccxport/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
