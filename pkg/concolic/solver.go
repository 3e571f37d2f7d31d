package concolic

import "errors"

// ErrUnsupported is returned by a Solver when a formula contains an atom it
// cannot reason about (for example a real or string comparison, which the
// bounded linear solver explicitly declines per spec.md §9). The Explorer
// treats this the same as UNSAT and skips the candidate.
var ErrUnsupported = errors.New("concolic: solver does not support this atom")

// ErrSolverBounded is returned when a solver's search window was exhausted
// without reaching a decision (spec.md §7, SolverBounded). The Explorer
// treats this like UNSAT but logs it distinctly from a genuine
// unsatisfiability proof.
var ErrSolverBounded = errors.New("concolic: solver search window exhausted")

// Solution is a concrete assignment produced by a Solver: a mapping from
// variable name to a value of that variable's declared sort. A well-behaved
// Solver never reports "no assignment exists" as an empty Solution; Unsat is
// the dedicated sentinel for that (spec.md §3). A formula with no variable
// atoms at all (such as True) is satisfiable and yields a Solution whose
// Values map is empty.
type Solution struct {
	Values      map[string]interface{}
	Satisfiable bool
}

// Unsat is the sentinel returned by a Solver in place of an empty
// Solution.
var Unsat = Solution{Satisfiable: false}

// Solver is the pluggable capability every component receives for turning a
// conjunctive constraint formula into a concrete assignment (spec.md §4.6's
// "Plug-in interface"). An external, richer solver may be substituted for
// the bounded linear solver shipped in bounded_solver.go as long as it
// honors this contract: return a satisfiable Solution, Unsat, or one of
// ErrUnsupported/ErrSolverBounded.
type Solver interface {
	Solve(formula Expr) (Solution, error)
}
