// Package main is the entry point for stockctl, the stockkeeper command-line client.
package main

import (
	"fmt"
	"os"

	"github.com/mmynk/stockkeeper/cmd/stockctl/internal/commands"
	"github.com/mmynk/stockkeeper/pkg/logging"
)

func main() {
	logging.Setup()

	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
