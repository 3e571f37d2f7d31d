package concolic

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExplorerConjunctionPruning traces a two-guard conjunction ("x >= 0"
// then "x < 3") through five host executions. The bounded solver's
// unbounded-below default (math.MinInt64) and the dedup-and-retry rule
// together determine the exact sequence of seeds tried; this test is a
// direct hand-trace of that sequence, not a property of the scenario alone.
func TestExplorerConjunctionPruning(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxIterations = 5
	session, err := NewSession(opts)
	require.NoError(t, err)

	tag, err := session.MakeSymbolicInt("x", 0)
	require.NoError(t, err)

	execute := func(seeds map[string]interface{}) (*PathCondition, error) {
		x := seeds["x"].(int64)
		rc := session.NewRecorderContext()
		rc.IcmpJump(x, 0, tag, Tag{}, CmpGE, x >= 0)
		rc.IcmpJump(x, 3, tag, Tag{}, CmpLT, x < 3)
		return rc.Snapshot(), nil
	}

	explorer := NewExplorer(session)
	result, err := explorer.Explore(context.Background(), map[string]interface{}{"x": int64(0)}, execute)
	require.NoError(t, err)

	assert.Equal(t, TerminatedMaxIterations, result.TerminatedReason)
	assert.Equal(t, 5, result.Iterations)
	require.Len(t, result.Paths, 3)

	assert.Equal(t, int64(0), result.Paths[0].Seeds["x"])
	assert.Equal(t, []string{"x >= 0", "x < 3"}, result.Paths[0].Constraints)

	assert.Equal(t, int64(3), result.Paths[1].Seeds["x"])
	assert.Equal(t, []string{"x >= 0", "x >= 3"}, result.Paths[1].Constraints)

	assert.Equal(t, int64(math.MinInt64), result.Paths[2].Seeds["x"])
	assert.Equal(t, []string{"x < 0", "x < 3"}, result.Paths[2].Constraints)
}

// TestExplorerFiveCaseSelect mirrors the "five-case-select" scenario
// (spec.md:276): a switch over choice in [0,4] seeded at 0 should visit
// every case exactly once and then exhaust. Every negation candidate a
// switchEntry offers is itself a concrete case equality (DESIGN.md's
// record-time resolution of the default-arm open question), so the
// bounded solver never falls back to an unbounded complement and no
// sixth, default-arm path is ever reached.
func TestExplorerFiveCaseSelect(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxIterations = 10
	session, err := NewSession(opts)
	require.NoError(t, err)

	tag, err := session.MakeSymbolicInt("choice", 0)
	require.NoError(t, err)
	cases := []int64{0, 1, 2, 3, 4}

	execute := func(seeds map[string]interface{}) (*PathCondition, error) {
		choice := seeds["choice"].(int64)
		rc := session.NewRecorderContext()
		selected := int64(-1)
		if choice >= 0 && choice <= 4 {
			selected = choice
		}
		rc.SwitchCase(choice, tag, cases, selected)
		return rc.Snapshot(), nil
	}

	explorer := NewExplorer(session)
	result, err := explorer.Explore(context.Background(), map[string]interface{}{"choice": int64(0)}, execute)
	require.NoError(t, err)

	assert.Equal(t, TerminatedExhausted, result.TerminatedReason)
	require.Len(t, result.Paths, 5)

	constraintByChoice := make(map[int64]string, len(result.Paths))
	for _, p := range result.Paths {
		require.Len(t, p.Constraints, 1)
		constraintByChoice[p.Seeds["choice"].(int64)] = p.Constraints[0]
	}

	for _, c := range cases {
		c := c
		t.Run(fmt.Sprintf("choice=%d", c), func(t *testing.T) {
			constraint, ok := constraintByChoice[c]
			require.True(t, ok, "expected a path record seeded at choice=%d", c)
			assert.Equal(t, fmt.Sprintf("choice == %d", c), constraint)
		})
	}
}

// TestExplorerExhaustsWhenHostRecordsNothing covers the "work queue empties"
// termination path (spec.md §4.7): a host that never compares a symbolic
// value produces one empty path condition and nothing to negate.
func TestExplorerExhaustsWhenHostRecordsNothing(t *testing.T) {
	session, err := NewSession(DefaultOptions())
	require.NoError(t, err)

	execute := func(seeds map[string]interface{}) (*PathCondition, error) {
		return session.NewRecorderContext().Snapshot(), nil
	}

	explorer := NewExplorer(session)
	result, err := explorer.Explore(context.Background(), nil, execute)
	require.NoError(t, err)

	assert.Equal(t, TerminatedExhausted, result.TerminatedReason)
	assert.Equal(t, 1, result.Iterations)
	require.Len(t, result.Paths, 1)
	assert.Empty(t, result.Paths[0].Constraints)
}

func TestExplorerCancellation(t *testing.T) {
	session, err := NewSession(DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	execute := func(seeds map[string]interface{}) (*PathCondition, error) {
		t.Fatal("execute must not run once the context is already cancelled")
		return nil, nil
	}

	explorer := NewExplorer(session)
	result, err := explorer.Explore(ctx, nil, execute)
	require.NoError(t, err)
	assert.Equal(t, TerminatedCancelled, result.TerminatedReason)
	assert.Equal(t, 0, result.Iterations)
}

func TestExplorerHostFailureWrapsError(t *testing.T) {
	session, err := NewSession(DefaultOptions())
	require.NoError(t, err)

	boom := assert.AnError
	execute := func(seeds map[string]interface{}) (*PathCondition, error) {
		return nil, boom
	}

	explorer := NewExplorer(session)
	_, err = explorer.Explore(context.Background(), nil, execute)
	require.Error(t, err)
	var hf *HostFailureError
	assert.ErrorAs(t, err, &hf)
}
