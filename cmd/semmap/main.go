// SPDX-License-Identifier: Apache-2.0

// Command semmap maps delimited table records onto a semantic graph
// driven by a YAML data contract, and hands the graph to an external
// consistency checker.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
