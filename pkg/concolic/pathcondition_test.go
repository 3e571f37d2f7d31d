package concolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathConditionEmptyConjunctionIsTrue(t *testing.T) {
	pc := NewPathCondition()
	assert.Equal(t, True, pc.AsConjunction())
	assert.Equal(t, True, pc.PrefixConjunction(0))
}

func TestPathConditionAppendAndConjoin(t *testing.T) {
	pc := NewPathCondition()
	x := NewVar("x", SortInt)
	pc.Append(newSimpleEntry(MustNewBinary(GT, x, NewIntConst(0)), 1))
	pc.Append(newSimpleEntry(MustNewBinary(LT, x, NewIntConst(10)), 2))

	require.Equal(t, 2, pc.Len())
	assert.Equal(t, "(x > 0 && x < 10)", pc.AsConjunction().String())
	assert.Equal(t, "x > 0", pc.PrefixConjunction(1).String())
	assert.Equal(t, True, pc.PrefixConjunction(0))
}

func TestPathConditionPrefixConjunctionOutOfRangePanics(t *testing.T) {
	pc := NewPathCondition()
	pc.Append(newSimpleEntry(NewIntConst(1), 1))
	assert.Panics(t, func() { pc.PrefixConjunction(2) })
	assert.Panics(t, func() { pc.PrefixConjunction(-1) })
}

func TestPathConditionSnapshotIsIndependent(t *testing.T) {
	pc := NewPathCondition()
	pc.Append(newSimpleEntry(NewIntConst(1), 1))
	snap := pc.Snapshot()

	pc.Append(newSimpleEntry(NewIntConst(2), 2))
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, 2, pc.Len())
}

func TestPathConditionReset(t *testing.T) {
	pc := NewPathCondition()
	pc.Append(newSimpleEntry(NewIntConst(1), 1))
	pc.Reset()
	assert.Equal(t, 0, pc.Len())
	assert.Equal(t, True, pc.AsConjunction())
}
