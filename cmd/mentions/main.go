// Package main is the entry point for the mentions CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/mentions/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
