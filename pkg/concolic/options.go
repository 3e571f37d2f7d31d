package concolic

// Options holds the session- and explorer-wide configuration recognized by
// the engine (spec.md §6's configuration table).
type Options struct {
	// Debug, when true, emits per-event diagnostics to the configured
	// logger.
	Debug bool

	// InterceptionEnabled is the master gate for the Recorder; when false,
	// every entry point degrades to a no-op that still returns the
	// concrete result.
	InterceptionEnabled bool

	// MaxRecursionDepth is the Recorder's reentrancy bound.
	MaxRecursionDepth int

	// MaxIterations bounds the total number of host executions the
	// Explorer will run in one Explore call.
	MaxIterations int

	// SearchWidth is the scan window handed to the bounded linear solver
	// when no external Solver is supplied.
	SearchWidth int

	// Solver overrides the default BoundedLinearSolver. Leave nil to use
	// one sized by SearchWidth.
	Solver Solver
}

// DefaultMaxRecursionDepth is the Recorder's reentrancy bound absent
// configuration (spec.md §4.4 "design value: 10").
const DefaultMaxRecursionDepth = 10

// DefaultMaxIterations is the Explorer's termination bound absent
// configuration (spec.md §6).
const DefaultMaxIterations = 100

// DefaultOptions returns the documented defaults for every recognized
// option.
func DefaultOptions() Options {
	return Options{
		Debug:               false,
		InterceptionEnabled: true,
		MaxRecursionDepth:   DefaultMaxRecursionDepth,
		MaxIterations:       DefaultMaxIterations,
		SearchWidth:         DefaultSearchWidth,
		Solver:              nil,
	}
}

// Validate reports an InvalidConfigError for out-of-range option values.
func (o Options) Validate() error {
	if o.MaxRecursionDepth <= 0 {
		return &InvalidConfigError{Detail: "max_recursion_depth must be positive"}
	}
	if o.MaxIterations <= 0 {
		return &InvalidConfigError{Detail: "max_iterations must be positive"}
	}
	if o.SearchWidth <= 0 {
		return &InvalidConfigError{Detail: "search_width must be positive"}
	}
	return nil
}

// resolveSolver returns o.Solver if set, otherwise a BoundedLinearSolver
// sized by o.SearchWidth.
func (o Options) resolveSolver() Solver {
	if o.Solver != nil {
		return o.Solver
	}
	return NewBoundedLinearSolver(o.SearchWidth)
}
