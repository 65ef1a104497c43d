// Command benchmark runs the MIPS simulator workload harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv       Output results in CSV format (default: human-readable)
//	-json      Output results as JSON
//	-core      Run only the core subset
//	-no-cache  Disable the cache profiler
//
// Example:
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/mipssim/benchmarks"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as JSON")
	coreOnly := flag.Bool("core", false, "Run only the core benchmarks")
	noCache := flag.Bool("no-cache", false, "Disable cache profiling")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.EnableCaches = !*noCache
	config.Output = os.Stdout

	harness := benchmarks.NewHarness(config)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	if !*csvOutput && !*jsonOutput {
		fmt.Println("MIPS Simulator Benchmark Harness")
		fmt.Println("================================")
		fmt.Printf("Caches: %v\n", config.EnableCaches)
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	for _, r := range results {
		if !r.Passed {
			os.Exit(1)
		}
	}
}
