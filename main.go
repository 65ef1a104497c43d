// Package main provides the entry point for mipssim.
// mipssim is a MIPS32 subset simulator that writes a per-cycle execution
// trace.
//
// For the full CLI, use: go run ./cmd/mipssim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("mipssim - MIPS32 Trace Simulator")
	fmt.Println("")
	fmt.Println("Usage: mipssim [options] <image> [output]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config      Path to simulator configuration JSON file")
	fmt.Println("  -o           Write the trace to a file")
	fmt.Println("  -format      Trace format: text or json")
	fmt.Println("  -max-cycles  Stop after this many cycles")
	fmt.Println("  -profile     Profile instruction and data caches")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mipssim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mipssim' instead.")
	}
}
