// Package benchmarks provides a workload harness for the MIPS32 simulator.
// Each workload is a small hand-assembled program with a known result. The
// harness runs it to completion and collects execution and cache statistics.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/mipssim/cache"
	"github.com/sarchlab/mipssim/core"
	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/loader"
	"github.com/sarchlab/mipssim/trace"
)

// Fixed memory layout shared by every workload.
const (
	TextBase = uint32(0x1000)
	DataBase = uint32(0x2000)
	StackTop = uint32(0x3000)
)

// BenchmarkResult holds the results for a single workload run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark exercises
	Description string `json:"description"`

	Cycles        uint64 `json:"cycles"`
	Instructions  uint64 `json:"instructions"`
	TakenBranches uint64 `json:"taken_branches"`
	Loads         uint64 `json:"loads"`
	Stores        uint64 `json:"stores"`

	// ICacheHits/Misses (if caches enabled)
	ICacheHits   uint64 `json:"icache_hits,omitempty"`
	ICacheMisses uint64 `json:"icache_misses,omitempty"`

	// DCacheHits/Misses (if caches enabled)
	DCacheHits   uint64 `json:"dcache_hits,omitempty"`
	DCacheMisses uint64 `json:"dcache_misses,omitempty"`

	// Result is the value of the benchmark's result register at exit
	Result int32 `json:"result"`

	// Passed is true if Result matched the expected value
	Passed bool `json:"passed"`

	// Error is set if the run did not reach the exit syscall
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single workload.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark exercises
	Description string

	// Program is the instruction stream, loaded at TextBase
	Program []uint32

	// Data is the data segment, loaded at DataBase
	Data []int32

	// ResultReg holds the result once the program exits
	ResultReg uint8

	// ExpectedResult is the value ResultReg must hold
	ExpectedResult int32
}

// Image returns the workload as a program image.
func (b Benchmark) Image() *loader.Program {
	return &loader.Program{
		Header: loader.Header{
			InitialPC: TextBase,
			DataBase:  DataBase,
			InitialSP: StackTop,
			NumData:   uint32(len(b.Data)),
		},
		Data: b.Data,
		Text: b.Program,
	}
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableCaches turns on the cache profiler
	EnableCaches bool

	// ICache and DCache give the profiled cache geometries
	ICache cache.Config
	DCache cache.Config

	// MaxCycles bounds each run. 0 means no limit.
	MaxCycles uint64

	// Output receives printed results
	Output io.Writer
}

// DefaultConfig returns the default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableCaches: true,
		ICache:       cache.DefaultICacheConfig(),
		DCache:       cache.DefaultDCacheConfig(),
		MaxCycles:    1_000_000,
		Output:       os.Stdout,
	}
}

// Harness runs a list of benchmarks.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a harness with the given configuration.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a single benchmark.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds several benchmarks.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll runs every benchmark in order.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		results = append(results, h.runBenchmark(bench))
	}

	return results
}

func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	image := bench.Image()
	memory := emu.NewMemory()
	image.LoadInto(memory)

	var opts []emu.EmulatorOption
	if h.config.MaxCycles > 0 {
		opts = append(opts, emu.WithMaxInstructions(h.config.MaxCycles))
	}

	var profiler *cache.Profiler
	if h.config.EnableCaches {
		profiler = cache.NewProfiler(h.config.ICache, h.config.DCache)
		opts = append(opts, emu.WithAccessObserver(profiler))
	}

	c := core.NewCore(memory, core.LayoutOf(image), trace.Discard, opts...)

	start := time.Now()
	err := c.Run()
	wallTime := time.Since(start)

	stats := c.Stats()
	result := BenchmarkResult{
		Name:          bench.Name,
		Description:   bench.Description,
		Cycles:        stats.Cycles,
		Instructions:  stats.Instructions,
		TakenBranches: stats.TakenBranches,
		Loads:         stats.Loads,
		Stores:        stats.Stores,
		Result:        c.RegFile().ReadReg(bench.ResultReg),
		WallTime:      wallTime,
	}
	result.Passed = err == nil && result.Result == bench.ExpectedResult
	if err != nil {
		result.Error = err.Error()
	}

	if profiler != nil {
		ic := profiler.ICache.Stats()
		result.ICacheHits = ic.Hits
		result.ICacheMisses = ic.Misses

		dc := profiler.DCache.Stats()
		result.DCacheHits = dc.Hits
		result.DCacheMisses = dc.Misses
	}

	return result
}

// PrintResults prints results in human-readable form.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	out := h.config.Output

	_, _ = fmt.Fprintln(out, "=== MIPS Simulator Benchmark Results ===")
	_, _ = fmt.Fprintln(out, "")

	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}

		_, _ = fmt.Fprintf(out, "Benchmark: %s [%s]\n", r.Name, status)
		_, _ = fmt.Fprintf(out, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(out, "  Result: %d\n", r.Result)
		if r.Error != "" {
			_, _ = fmt.Fprintf(out, "  Error: %s\n", r.Error)
		}
		_, _ = fmt.Fprintf(out, "  Cycles:         %d\n", r.Cycles)
		_, _ = fmt.Fprintf(out, "  Instructions:   %d\n", r.Instructions)
		_, _ = fmt.Fprintf(out, "  Taken Branches: %d\n", r.TakenBranches)
		_, _ = fmt.Fprintf(out, "  Loads/Stores:   %d/%d\n", r.Loads, r.Stores)

		if r.ICacheHits > 0 || r.ICacheMisses > 0 {
			_, _ = fmt.Fprintln(out, "  --- I-Cache ---")
			_, _ = fmt.Fprintf(out, "  Hits:   %d\n", r.ICacheHits)
			_, _ = fmt.Fprintf(out, "  Misses: %d\n", r.ICacheMisses)
		}

		if r.DCacheHits > 0 || r.DCacheMisses > 0 {
			_, _ = fmt.Fprintln(out, "  --- D-Cache ---")
			_, _ = fmt.Fprintf(out, "  Hits:   %d\n", r.DCacheHits)
			_, _ = fmt.Fprintf(out, "  Misses: %d\n", r.DCacheMisses)
		}

		_, _ = fmt.Fprintf(out, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(out, "")
	}
}

// PrintCSV prints results as CSV.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	out := h.config.Output

	_, _ = fmt.Fprintln(out,
		"name,cycles,instructions,taken_branches,loads,stores,icache_hits,icache_misses,dcache_hits,dcache_misses,result,passed")

	for _, r := range results {
		_, _ = fmt.Fprintf(out, "%s,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%t\n",
			r.Name,
			r.Cycles,
			r.Instructions,
			r.TakenBranches,
			r.Loads,
			r.Stores,
			r.ICacheHits,
			r.ICacheMisses,
			r.DCacheHits,
			r.DCacheMisses,
			r.Result,
			r.Passed,
		)
	}
}

// PrintJSON prints results as an indented JSON array.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	enc := json.NewEncoder(h.config.Output)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
