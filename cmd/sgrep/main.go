// Command sgrep searches source code syntax-aware: literal patterns inside
// comments, string literals, and identifiers, or tree-sitter structural
// queries with capture highlighting.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
