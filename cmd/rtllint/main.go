// Package main is the entry point for the rtllint command.
package main

import (
	"os"

	"github.com/leapstack-labs/rtllint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
