// Package main is the entry point for the featlint CLI.
package main

import (
	"os"

	"github.com/featlint/featlint/cmd/featlint/commands"
	"github.com/featlint/featlint/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(errors.Code(err))
	}
}
