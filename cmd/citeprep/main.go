// Command citeprep builds cleaned, labeled citation-need training files
// from per-language statement dumps.
package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/citeprep/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
