// Package main is the entry point for the hdkit CLI.
package main

import (
	"os"

	"github.com/mrz1836/hdkit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
