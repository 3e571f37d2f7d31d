package concolic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedLinearSolverSimpleRange(t *testing.T) {
	s := NewBoundedLinearSolver(1000)
	x := NewVar("x", SortInt)
	formula := MustNewBinary(AND,
		MustNewBinary(GE, x, NewIntConst(5)),
		MustNewBinary(LT, x, NewIntConst(10)),
	)
	sol, err := s.Solve(formula)
	require.NoError(t, err)
	require.True(t, sol.Satisfiable)
	v := sol.Values["x"].(int64)
	assert.True(t, v >= 5 && v < 10, "expected x in [5,10), got %d", v)
}

func TestBoundedLinearSolverUnsatContradiction(t *testing.T) {
	// Scenario 4: (x == 5) AND (x != 5) is UNSAT.
	s := NewBoundedLinearSolver(DefaultSearchWidth)
	x := NewVar("x", SortInt)
	formula := MustNewBinary(AND,
		MustNewBinary(EQ, x, NewIntConst(5)),
		MustNewBinary(NE, x, NewIntConst(5)),
	)
	sol, err := s.Solve(formula)
	require.NoError(t, err)
	assert.False(t, sol.Satisfiable)
}

func TestBoundedLinearSolverUnsatEmptyRange(t *testing.T) {
	s := NewBoundedLinearSolver(DefaultSearchWidth)
	x := NewVar("x", SortInt)
	formula := MustNewBinary(AND,
		MustNewBinary(GT, x, NewIntConst(10)),
		MustNewBinary(LT, x, NewIntConst(10)),
	)
	sol, err := s.Solve(formula)
	require.NoError(t, err)
	assert.False(t, sol.Satisfiable)
}

func TestBoundedLinearSolverRequiredValue(t *testing.T) {
	s := NewBoundedLinearSolver(DefaultSearchWidth)
	x := NewVar("x", SortInt)
	sol, err := s.Solve(MustNewBinary(EQ, x, NewIntConst(42)))
	require.NoError(t, err)
	require.True(t, sol.Satisfiable)
	assert.Equal(t, int64(42), sol.Values["x"])
}

func TestBoundedLinearSolverForbiddenValue(t *testing.T) {
	s := NewBoundedLinearSolver(DefaultSearchWidth)
	x := NewVar("x", SortInt)
	formula := MustNewBinary(AND,
		MustNewBinary(GE, x, NewIntConst(0)),
		MustNewBinary(NE, x, NewIntConst(0)),
	)
	sol, err := s.Solve(formula)
	require.NoError(t, err)
	require.True(t, sol.Satisfiable)
	assert.Equal(t, int64(1), sol.Values["x"])
}

func TestBoundedLinearSolverDisjunction(t *testing.T) {
	s := NewBoundedLinearSolver(DefaultSearchWidth)
	x := NewVar("x", SortInt)
	formula := MustNewBinary(OR,
		MustNewBinary(EQ, x, NewIntConst(1)),
		MustNewBinary(EQ, x, NewIntConst(2)),
	)
	sol, err := s.Solve(formula)
	require.NoError(t, err)
	require.True(t, sol.Satisfiable)
	v := sol.Values["x"].(int64)
	assert.True(t, v == 1 || v == 2)
}

func TestBoundedLinearSolverDisjunctionBothUnsat(t *testing.T) {
	s := NewBoundedLinearSolver(DefaultSearchWidth)
	x := NewVar("x", SortInt)
	formula := MustNewBinary(OR,
		MustNewBinary(AND, MustNewBinary(EQ, x, NewIntConst(1)), MustNewBinary(NE, x, NewIntConst(1))),
		MustNewBinary(AND, MustNewBinary(EQ, x, NewIntConst(2)), MustNewBinary(NE, x, NewIntConst(2))),
	)
	sol, err := s.Solve(formula)
	require.NoError(t, err)
	assert.False(t, sol.Satisfiable)
}

func TestBoundedLinearSolverUnboundedBelowUsesMinInt64(t *testing.T) {
	s := NewBoundedLinearSolver(DefaultSearchWidth)
	x := NewVar("x", SortInt)
	sol, err := s.Solve(MustNewBinary(LT, x, NewIntConst(0)))
	require.NoError(t, err)
	require.True(t, sol.Satisfiable)
	assert.Equal(t, int64(math.MinInt64), sol.Values["x"])
}

func TestBoundedLinearSolverReturnsErrSolverBoundedOnWindowExhaustion(t *testing.T) {
	// x >= 0 with every value in the first 3-wide scan window forbidden: a
	// wider window could still find x == 3, so this must be reported as
	// ErrSolverBounded rather than a genuine UNSAT.
	s := NewBoundedLinearSolver(3)
	x := NewVar("x", SortInt)
	formula := MustNewBinary(AND,
		MustNewBinary(GE, x, NewIntConst(0)),
		MustNewBinary(AND,
			MustNewBinary(NE, x, NewIntConst(0)),
			MustNewBinary(AND,
				MustNewBinary(NE, x, NewIntConst(1)),
				MustNewBinary(NE, x, NewIntConst(2)),
			),
		),
	)
	_, err := s.Solve(formula)
	assert.ErrorIs(t, err, ErrSolverBounded)
}

func TestBoundedLinearSolverUnsupportedAtom(t *testing.T) {
	s := NewBoundedLinearSolver(DefaultSearchWidth)
	r := NewVar("r", SortReal)
	_, err := s.Solve(MustNewBinary(GT, r, NewRealConst(1.5)))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestBoundedLinearSolverEmptyFormulaIsTriviallySat(t *testing.T) {
	s := NewBoundedLinearSolver(DefaultSearchWidth)
	sol, err := s.Solve(True)
	require.NoError(t, err)
	assert.True(t, sol.Satisfiable)
	assert.Empty(t, sol.Values)
}
