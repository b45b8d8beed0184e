// ABOUTME: Main entry point for the digests-reader command
// ABOUTME: Runs the CLI and exits non-zero on failure

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
