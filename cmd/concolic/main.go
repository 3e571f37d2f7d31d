// Command concolic drives the path exploration engine against a handful of
// built-in demo host programs and prints the session summary as JSON.
//
// No CLI framework is wired in: none of the library's retrieval pack (the
// teacher included) carries one, so the standard library flag package is
// the grounded choice here rather than an imported command-tree library.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/concolic/goconcolic/pkg/concolic"
)

const (
	exitOK            = 0
	exitInvalidConfig = 2
	exitSolverError   = 3
	exitHostFailure   = 4
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: concolic <run|version> [flags]")
		return exitInvalidConfig
	}

	switch args[0] {
	case "version":
		fmt.Fprintln(stdout, version)
		return exitOK
	case "run":
		return runScenario(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q (expected run|version)\n", args[0])
		return exitInvalidConfig
	}
}

func runScenario(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "path to a TOML configuration file")
	maxIterations := fs.Int("max-iterations", concolic.DefaultMaxIterations, "explorer termination bound")
	searchWidth := fs.Int("search-width", concolic.DefaultSearchWidth, "solver scan window")
	debug := fs.Bool("debug", false, "emit per-event diagnostics")
	interceptionEnabled := fs.Bool("interception-enabled", true, "master gate for the recorder")
	maxRecursionDepth := fs.Int("max-recursion-depth", concolic.DefaultMaxRecursionDepth, "recorder reentrancy bound")

	if err := fs.Parse(args); err != nil {
		return exitInvalidConfig
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: concolic run [flags] <scenario>")
		return exitInvalidConfig
	}
	sc, err := lookupScenario(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitInvalidConfig
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fileCfg, err := loadFileConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "reading config file: %v\n", err)
		return exitInvalidConfig
	}

	cliOpts := concolic.Options{
		Debug:               *debug,
		InterceptionEnabled: *interceptionEnabled,
		MaxRecursionDepth:   *maxRecursionDepth,
		MaxIterations:       *maxIterations,
		SearchWidth:         *searchWidth,
	}
	if sc.maxIterOpt != 0 && !explicit["max-iterations"] {
		cliOpts.MaxIterations = sc.maxIterOpt
	}

	opts, err := mergeOptions(fileCfg, cliOpts, explicit)
	if err != nil {
		fmt.Fprintf(stderr, "merging configuration: %v\n", err)
		return exitInvalidConfig
	}

	session, err := concolic.NewSession(opts)
	if err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return exitInvalidConfig
	}

	execute := sc.buildHost(session)
	explorer := concolic.NewExplorer(session)

	result, err := explorer.Explore(context.Background(), sc.seeds, execute)
	if err != nil {
		var hostErr *concolic.HostFailureError
		if errors.As(err, &hostErr) {
			fmt.Fprintf(stderr, "host execution failed: %v\n", err)
			return exitHostFailure
		}
		fmt.Fprintf(stderr, "solver error: %v\n", err)
		return exitSolverError
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(concolic.NewSummary(result)); err != nil {
		fmt.Fprintf(stderr, "encoding summary: %v\n", err)
		return exitSolverError
	}
	return exitOK
}
