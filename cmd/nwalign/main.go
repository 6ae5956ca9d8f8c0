// Command nwalign aligns two nucleotide sequences globally and reports every
// optimal alignment.
//
// Usage:
//
//	nwalign [command] [options]
//
// Commands:
//
//	align       Align the two sequences in a file or given by flags
//	serve       Start the HTTP API
//	version     Show version information
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
