// Package concolic implements the host-independent core of a concolic
// (concrete + symbolic) path exploration engine.
//
// A host program performs structured decisions — branches and multi-way
// selects — over inputs that may be marked symbolic. Each time the host
// makes such a decision it reports the event to a Recorder, which turns it
// into a constraint Expr and appends it to the path condition (PC) for the
// current thread of execution. After one run completes, the Explorer reads
// the PC, negates a suffix of it to target an unexplored branch, asks a
// Solver for a concrete assignment satisfying the new target, and feeds that
// assignment back as the next run's seeds.
//
// The package is organized the way the spec's component table lays things
// out, one file per component:
//
//	tag.go             - C1 label registry and Tag
//	variable.go        - symbolic variable registry
//	expr.go            - C2 expression algebra
//	constraint.go      - constraint record and comparison kinds
//	pathcondition.go   - C3 path condition buffer
//	recorder.go        - C4 recorder and event surface
//	negate.go          - C5 negator
//	solver.go          - pluggable solver contract and sentinels
//	bounded_solver.go  - C6 bounded linear solver
//	explorer.go        - C7 path explorer
//	session.go         - process-wide façade over C1 + shutdown + context plumbing
//	options.go         - session/explorer configuration
//	errors.go          - error taxonomy
//	output.go          - JSON summary format
//	logging.go         - structured diagnostics
package concolic
