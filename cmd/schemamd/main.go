// Package main is the entry point for the schemamd CLI.
package main

import (
	"os"

	"github.com/jmylchreest/schemamd/cmd/schemamd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
