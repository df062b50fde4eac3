// Package main is the entry point for the pmrt CLI.
package main

import (
	"os"

	"github.com/jmylchreest/pmrt/cmd/pmrt/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
