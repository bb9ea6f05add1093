// Package main is the entry point for the speechkit CLI.
//
// Usage:
//
//	speechkit [flags] <command> [args]
//
// Commands:
//
//	say        - Synthesize text to an audio file
//	voices     - List available voices
//	languages  - List supported languages
//	providers  - List and switch synthesis providers
//	config     - Configuration management
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/vocalizr/speechkit/cmd/speechkit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
