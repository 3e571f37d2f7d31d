package concolic

import "math"

// DefaultSearchWidth is the scan window used by BoundedLinearSolver when
// none is configured (spec.md §4.6 "design value: 1000").
const DefaultSearchWidth = 1000

// BoundedLinearSolver is the Bounded Linear Solver (C6). Given a
// conjunctive expression whose atoms are simple bounds/equalities/
// disequalities of the form "Var cmp Const" over integer-sorted variables,
// it computes a satisfying assignment or reports UNSAT. OR nodes are
// handled by disjunctive enumeration: each disjunct is solved independently
// and the first satisfiable one wins.
//
// The solver is intentionally bounded rather than a general SMT procedure:
// it is sufficient for exploration over the small, enumerable integer
// ranges a host's branch/switch conditions produce.
type BoundedLinearSolver struct {
	SearchWidth int
}

// NewBoundedLinearSolver returns a solver with the given scan window. A
// non-positive width falls back to DefaultSearchWidth.
func NewBoundedLinearSolver(searchWidth int) *BoundedLinearSolver {
	if searchWidth <= 0 {
		searchWidth = DefaultSearchWidth
	}
	return &BoundedLinearSolver{SearchWidth: searchWidth}
}

// Solve implements the Solver interface (spec.md §4.6's algorithm).
func (s *BoundedLinearSolver) Solve(formula Expr) (Solution, error) {
	return s.solveLeaves(flattenAnd(formula))
}

// flattenAnd descends a left-associated AND tree and returns its leaves in
// left-to-right order. A leaf may itself be an OR node; flattenAnd does not
// descend into OR, since OR is handled by disjunctive enumeration in
// solveLeaves, not by bound collection.
func flattenAnd(e Expr) []Expr {
	if e == True {
		return nil
	}
	if b, ok := e.(*BinaryExpr); ok && b.Op == AND {
		return append(flattenAnd(b.Left), flattenAnd(b.Right)...)
	}
	return []Expr{e}
}

func (s *BoundedLinearSolver) solveLeaves(leaves []Expr) (Solution, error) {
	for i, leaf := range leaves {
		b, ok := leaf.(*BinaryExpr)
		if !ok || b.Op != OR {
			continue
		}
		rest := make([]Expr, 0, len(leaves)-1)
		rest = append(rest, leaves[:i]...)
		rest = append(rest, leaves[i+1:]...)
		for _, disjunct := range []Expr{b.Left, b.Right} {
			candidate := append(append([]Expr{}, rest...), flattenAnd(disjunct)...)
			sol, err := s.solveLeaves(candidate)
			if err == nil && sol.Satisfiable {
				return sol, nil
			}
		}
		return Unsat, nil
	}
	return s.solveAtoms(leaves)
}

// varBounds accumulates the per-variable constraints of step 2 of the
// spec's algorithm.
type varBounds struct {
	min, max  int64
	required  *int64
	forbidden map[int64]bool
}

func newVarBounds() *varBounds {
	return &varBounds{min: math.MinInt64, max: math.MaxInt64, forbidden: make(map[int64]bool)}
}

func (s *BoundedLinearSolver) solveAtoms(leaves []Expr) (Solution, error) {
	if len(leaves) == 0 {
		return Solution{Values: map[string]interface{}{}, Satisfiable: true}, nil
	}

	order := make([]string, 0, len(leaves))
	bounds := make(map[string]*varBounds)

	for _, leaf := range leaves {
		b, ok := leaf.(*BinaryExpr)
		if !ok || !b.Op.IsComparison() {
			return Solution{}, ErrUnsupported
		}

		varName, k, op, ok := normalizeAtom(b)
		if !ok {
			return Solution{}, ErrUnsupported
		}

		vb, seen := bounds[varName]
		if !seen {
			vb = newVarBounds()
			bounds[varName] = vb
			order = append(order, varName)
		}

		switch op {
		case EQ:
			if vb.required != nil && *vb.required != k {
				return Unsat, nil
			}
			v := k
			vb.required = &v
		case NE:
			vb.forbidden[k] = true
		case LT:
			if k-1 < vb.max {
				vb.max = k - 1
			}
		case LE:
			if k < vb.max {
				vb.max = k
			}
		case GT:
			if k+1 > vb.min {
				vb.min = k + 1
			}
		case GE:
			if k > vb.min {
				vb.min = k
			}
		}
	}

	values := make(map[string]interface{}, len(order))
	for _, name := range order {
		vb := bounds[name]
		v, ok, bounded := vb.solve(s.SearchWidth)
		if !ok {
			if bounded {
				return Solution{}, ErrSolverBounded
			}
			return Unsat, nil
		}
		values[name] = v
	}
	return Solution{Values: values, Satisfiable: true}, nil
}

// solve applies steps 3-4 of spec.md §4.6 to one variable's accumulated
// bounds. bounded is true only when the failure is attributable to the
// search window truncating the scan before vb.max, as opposed to a genuine
// contradiction (min > max, or a required/forbidden clash) that no wider
// window would resolve — this is what lets Solve distinguish ErrSolverBounded
// from a true UNSAT.
func (vb *varBounds) solve(searchWidth int) (value int64, ok bool, bounded bool) {
	if vb.required != nil {
		v := *vb.required
		if v < vb.min || v > vb.max || vb.forbidden[v] {
			return 0, false, false
		}
		return v, true, false
	}

	if vb.min > vb.max {
		return 0, false, false
	}

	// limit is the inclusive upper end of the scan: vb.max, or the last value
	// of the [min, min+searchWidth) window when that ends before vb.max.
	limit := vb.max
	truncated := false
	// Guard against overflow when min is already near math.MaxInt64.
	if vb.min <= math.MaxInt64-int64(searchWidth) && vb.min+int64(searchWidth) <= limit {
		limit = vb.min + int64(searchWidth) - 1
		truncated = true
	}
	for v := vb.min; ; v++ {
		if !vb.forbidden[v] {
			return v, true, false
		}
		if v == limit {
			break
		}
	}
	return 0, false, truncated
}

// normalizeAtom rewrites an atom so its variable operand is on the left
// (flipping the operator when necessary) and extracts the variable name and
// integer constant. ok is false when the atom is not of the "Var cmp Const"
// / "Const cmp Var" shape over an integer-sorted variable.
func normalizeAtom(b *BinaryExpr) (varName string, k int64, op BinOp, ok bool) {
	if v, c, isVarLeft := asVarConst(b.Left, b.Right); isVarLeft {
		return v.Name, c, b.Op, true
	}
	if v, c, isVarRight := asVarConst(b.Right, b.Left); isVarRight {
		return v.Name, c, Flip(b.Op), true
	}
	return "", 0, 0, false
}

func asVarConst(maybeVar, maybeConst Expr) (*VarExpr, int64, bool) {
	v, ok := maybeVar.(*VarExpr)
	if !ok || v.Sort() != SortInt {
		return nil, 0, false
	}
	c, ok := maybeConst.(*IntConst)
	if !ok {
		return nil, 0, false
	}
	return v, c.Value, true
}
