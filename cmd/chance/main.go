// chance draws random bytes, integers, picks and shuffles from a selectable
// random source, on the command line or as an MCP server.
package main

import (
	"fmt"
	"os"
)

// Version information - set at build time.
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
