// Package main is the entry point for the windtrader CLI.
package main

import (
	"os"

	"github.com/westfall/windtrader/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
