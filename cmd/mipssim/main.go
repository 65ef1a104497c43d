// Package main provides the entry point for the MIPS32 trace simulator.
//
// Usage:
//
//	mipssim [options] <image> [output]
//
// The trace is written to output (or the -o file), or to stdout when neither
// is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/sarchlab/mipssim/cache"
	"github.com/sarchlab/mipssim/config"
	"github.com/sarchlab/mipssim/core"
	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/loader"
	"github.com/sarchlab/mipssim/trace"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	outputPath string
	format     string
	maxCycles  uint64
	profile    bool
	verbose    bool
	dump       bool
	cpuProfile string
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("mipssim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to simulator configuration JSON file")
	fs.StringVar(&opts.outputPath, "o", "", "Write the trace to this file instead of stdout")
	fs.StringVar(&opts.format, "format", "", "Trace format: text or json")
	fs.Uint64Var(&opts.maxCycles, "max-cycles", 0, "Stop after this many cycles (0 = unlimited)")
	fs.BoolVar(&opts.profile, "profile", false, "Profile instruction and data cache behavior")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")
	fs.BoolVar(&opts.dump, "dump", false, "Pretty-print the loaded program image to stderr")
	fs.StringVar(&opts.cpuProfile, "cpuprofile", "", "Write a CPU profile to file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mipssim [options] <image> [output]\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return opts, fs, nil
}

// loadConfig reads the config file, if any, and applies explicitly set flags
// on top of it.
func loadConfig(opts *options, fs *flag.FlagSet) (*config.SimConfig, error) {
	cfg := config.DefaultSimConfig()
	if opts.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.TraceFormat = opts.format
		case "max-cycles":
			cfg.MaxCycles = opts.maxCycles
		case "profile":
			cfg.ProfileCaches = opts.profile
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return 1
	}

	imagePath := fs.Arg(0)
	outputPath := opts.outputPath
	if fs.NArg() == 2 {
		outputPath = fs.Arg(1)
	}

	cfg, err := loadConfig(opts, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			fmt.Fprintf(stderr, "Error creating CPU profile: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(stderr, "Error starting CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	prog, err := loader.Load(imagePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading program: %v\n", err)
		return 1
	}

	if opts.verbose {
		fmt.Fprintf(stderr, "Loaded: %s\n", imagePath)
		fmt.Fprintf(stderr, "Entry point: 0x%X\n", prog.InitialPC)
		fmt.Fprintf(stderr, "Data: %d words at 0x%X\n", prog.NumData, prog.DataBase)
		fmt.Fprintf(stderr, "Text: %d words\n", len(prog.Text))
	}

	if opts.dump {
		dumpProgram(stderr, prog)
	}

	out := stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening output file: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	return simulate(prog, cfg, out, stderr, opts.verbose)
}

// simulate runs prog to completion and reports statistics.
func simulate(
	prog *loader.Program,
	cfg *config.SimConfig,
	out, stderr io.Writer,
	verbose bool,
) int {
	memory := emu.NewMemory()
	prog.LoadInto(memory)

	var emuOpts []emu.EmulatorOption
	if cfg.MaxCycles > 0 {
		emuOpts = append(emuOpts, emu.WithMaxInstructions(cfg.MaxCycles))
	}

	var profiler *cache.Profiler
	if cfg.ProfileCaches {
		profiler = cache.NewProfiler(cfg.ICache, cfg.DCache)
		emuOpts = append(emuOpts, emu.WithAccessObserver(profiler))
	}

	c := core.NewCore(memory, core.LayoutOf(prog), newTraceWriter(cfg.TraceFormat, out), emuOpts...)
	runErr := c.Run()

	if verbose {
		stats := c.Stats()
		fmt.Fprintf(stderr, "Cycles: %d\n", stats.Cycles)
		fmt.Fprintf(stderr, "Instructions executed: %d\n", stats.Instructions)
		fmt.Fprintf(stderr, "Unknown instructions: %d\n", stats.Unknown)
		fmt.Fprintf(stderr, "Taken branches: %d\n", stats.TakenBranches)
		fmt.Fprintf(stderr, "Loads: %d, Stores: %d\n", stats.Loads, stats.Stores)
	}

	if profiler != nil {
		profiler.Report(stderr)
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "Simulation stopped: %v\n", runErr)
		return 1
	}

	return 0
}

func newTraceWriter(format string, out io.Writer) trace.Writer {
	if format == config.FormatJSON {
		return trace.NewJSONWriter(out)
	}
	return trace.NewTextWriter(out)
}

func dumpProgram(w io.Writer, prog *loader.Program) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(isTerminal(w))
	_, _ = printer.Println(prog)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
