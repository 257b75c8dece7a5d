// Package main is the entry point for the Passgate CLI application.
// It manages the local authentication session for your Passgate account.
package main

import (
	"passgate/cli/cmd"
)

// main is the entry point for the Passgate CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
