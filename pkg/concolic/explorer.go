package concolic

import (
	"context"
	"errors"
	"time"

	"github.com/concolic/goconcolic/internal/fingerprint"
)

// TerminatedReason names why one Explore call stopped.
type TerminatedReason string

const (
	TerminatedExhausted     TerminatedReason = "exhausted"
	TerminatedMaxIterations TerminatedReason = "max_iterations"
	TerminatedCancelled     TerminatedReason = "cancelled"
)

// PathRecord is one accepted, distinct path: the seeds that produced it,
// the printed form of its path condition, and how long execution took.
type PathRecord struct {
	Seeds       map[string]interface{}
	Constraints []string
	Duration    time.Duration
}

// ExploreResult is the Explorer's output (spec.md §6's JSON summary, before
// serialization).
type ExploreResult struct {
	Paths            []PathRecord
	Iterations       int
	TerminatedReason TerminatedReason
}

// ExecuteFunc runs the host program once with the given seed assignment and
// returns the path condition it accumulated. A non-nil error is treated as
// a HostFailure and aborts exploration (spec.md §4.7, §7).
type ExecuteFunc func(seeds map[string]interface{}) (*PathCondition, error)

// Explorer is the Path Explorer (C7): the fixpoint loop that drives the
// host across varying seeds, remembers path conditions already seen, and
// derives each next input by negating a suffix of a previously recorded PC.
type Explorer struct {
	session *Session
	solver  Solver
}

// NewExplorer returns an Explorer bound to session, using the solver
// resolved from session's options (or the session's configured override).
func NewExplorer(session *Session) *Explorer {
	return &Explorer{session: session, solver: session.opts.resolveSolver()}
}

type workItem struct {
	formula  Expr
	priority int
}

// maxSolutionRetries bounds the dedup-and-retry loop of spec.md §4.7's
// "Deduplication of solutions" rule.
const maxSolutionRetries = 3

// Explore runs the fixpoint loop described in spec.md §4.7 starting from
// seeds, using execute to run the host. It terminates when the work queue
// empties, max_iterations is reached, or ctx is cancelled.
func (ex *Explorer) Explore(ctx context.Context, seeds map[string]interface{}, execute ExecuteFunc) (ExploreResult, error) {
	maxIterations := ex.session.opts.MaxIterations
	log := ex.session.log

	seen := make(map[uint64]bool)
	history := make(map[string][]int64)
	for name, v := range seeds {
		if iv, ok := v.(int64); ok {
			history[name] = append(history[name], iv)
		}
	}

	var queue []workItem
	var paths []PathRecord
	iterations := 0
	currentSeeds := cloneSeeds(seeds)

	for {
		select {
		case <-ctx.Done():
			return ExploreResult{Paths: paths, Iterations: iterations, TerminatedReason: TerminatedCancelled}, nil
		default:
		}

		if iterations >= maxIterations {
			return ExploreResult{Paths: paths, Iterations: iterations, TerminatedReason: TerminatedMaxIterations}, nil
		}

		start := time.Now()
		pc, err := execute(currentSeeds)
		duration := time.Since(start)
		iterations++
		if err != nil {
			return ExploreResult{Paths: paths, Iterations: iterations, TerminatedReason: TerminatedMaxIterations},
				wrapHostFailure(err)
		}

		entries := pc.Entries()
		printed := make([]string, len(entries))
		for i, e := range entries {
			printed[i] = e.Expr().String()
		}
		fp := fingerprint.Strings(printed)

		if !seen[fp] {
			seen[fp] = true
			paths = append(paths, PathRecord{
				Seeds:       cloneSeeds(currentSeeds),
				Constraints: printed,
				Duration:    duration,
			})
			log.WithField("constraints", len(entries)).Debug("recorded new path")

			for i := len(entries); i >= 1; i-- {
				prefix := pc.PrefixConjunction(i - 1)
				entry := entries[i-1]
				for _, alt := range entry.Candidates() {
					formula := alt
					if prefix != True {
						formula = MustNewBinary(AND, prefix, alt)
					}
					queue = append(queue, workItem{formula: formula, priority: i})
				}
			}
		}

		next, ok := ex.nextSeeds(queue, history)
		if !ok {
			return ExploreResult{Paths: paths, Iterations: iterations, TerminatedReason: TerminatedExhausted}, nil
		}
		queue = next.remaining
		currentSeeds = next.seeds
		for name, v := range currentSeeds {
			if iv, ok := v.(int64); ok {
				history[name] = append(history[name], iv)
			}
		}
	}
}

type nextSeedsResult struct {
	seeds     map[string]interface{}
	remaining []workItem
}

// nextSeeds pops candidates off queue (highest priority first) until one
// solves to a fresh (not previously tried) seed assignment, or the queue is
// exhausted.
func (ex *Explorer) nextSeeds(queue []workItem, history map[string][]int64) (nextSeedsResult, bool) {
	for len(queue) > 0 {
		idx := highestPriorityIndex(queue)
		item := queue[idx]
		queue = append(queue[:idx], queue[idx+1:]...)

		formula := item.formula
		accepted, ok := ex.solveFresh(formula, history)
		if !ok {
			continue
		}
		return nextSeedsResult{seeds: accepted, remaining: queue}, true
	}
	return nextSeedsResult{}, false
}

// solveFresh solves formula and, if the result duplicates a previously
// tried assignment, retries with an added disequality against the
// duplicate value up to maxSolutionRetries times (spec.md §4.7
// "Deduplication of solutions").
func (ex *Explorer) solveFresh(formula Expr, history map[string][]int64) (map[string]interface{}, bool) {
	for attempt := 0; attempt <= maxSolutionRetries; attempt++ {
		sol, err := ex.solver.Solve(formula)
		if err != nil {
			if errors.Is(err, ErrSolverBounded) {
				ex.session.log.WithField("formula", formula.String()).
					Debug("solver search window exhausted without a decision")
			}
			return nil, false
		}
		if !sol.Satisfiable {
			return nil, false
		}
		if !isPreviouslyTried(sol.Values, history) {
			return sol.Values, true
		}
		formula = withFreshnessConstraints(formula, sol.Values)
	}
	return nil, false
}

func isPreviouslyTried(values map[string]interface{}, history map[string][]int64) bool {
	for name, v := range values {
		iv, ok := v.(int64)
		if !ok {
			continue
		}
		for _, tried := range history[name] {
			if tried == iv {
				return true
			}
		}
	}
	return false
}

// withFreshnessConstraints conjoins formula with a NE atom for every
// integer-valued variable in values, steering the solver away from the
// assignment just rejected as a repeat.
func withFreshnessConstraints(formula Expr, values map[string]interface{}) Expr {
	result := formula
	for name, v := range values {
		iv, ok := v.(int64)
		if !ok {
			continue
		}
		ne := MustNewBinary(NE, NewVar(name, SortInt), NewIntConst(iv))
		result = MustNewBinary(AND, result, ne)
	}
	return result
}

func highestPriorityIndex(queue []workItem) int {
	best := 0
	for i := 1; i < len(queue); i++ {
		if queue[i].priority > queue[best].priority {
			best = i
		}
	}
	return best
}

func cloneSeeds(seeds map[string]interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(seeds))
	for k, v := range seeds {
		cp[k] = v
	}
	return cp
}
