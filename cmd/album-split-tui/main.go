// Command album-split-tui provides a terminal user interface for the
// album splitter.
package main

import (
	"fmt"
	"os"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/tui"
)

func main() {
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
