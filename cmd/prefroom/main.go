// Package main provides the prefroom CLI, which turns preference schema
// files into Go accessor code.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "prefroom:", err)
		os.Exit(exitCode(err))
	}
}
