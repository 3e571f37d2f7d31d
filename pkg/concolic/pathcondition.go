package concolic

// PathCondition is the Path Condition Buffer (C3): an ordered, per-execution
// list of PCEntry values representing a conjunction. The i-th prefix is the
// decision context after i comparisons. The Recorder is the sole mutator of
// an active PathCondition; the Explorer only ever holds read-only
// snapshots.
type PathCondition struct {
	entries []PCEntry
}

// NewPathCondition returns an empty path condition.
func NewPathCondition() *PathCondition {
	return &PathCondition{}
}

// Append adds entry to the end of the buffer. O(1) amortized.
func (pc *PathCondition) Append(entry PCEntry) {
	pc.entries = append(pc.entries, entry)
}

// Len returns the number of entries currently buffered.
func (pc *PathCondition) Len() int {
	return len(pc.entries)
}

// Entries returns the buffered entries in recording order. The returned
// slice must be treated as read-only by callers other than Append.
func (pc *PathCondition) Entries() []PCEntry {
	return pc.entries
}

// Snapshot returns a shallow copy of the buffer's current contents,
// suitable for a caller (the Explorer) to retain across a Reset.
func (pc *PathCondition) Snapshot() *PathCondition {
	cp := make([]PCEntry, len(pc.entries))
	copy(cp, pc.entries)
	return &PathCondition{entries: cp}
}

// Reset empties the buffer in place.
func (pc *PathCondition) Reset() {
	pc.entries = nil
}

// AsConjunction returns True when the buffer is empty, otherwise a
// left-associated AND of every entry's observed-fact expression.
func (pc *PathCondition) AsConjunction() Expr {
	if len(pc.entries) == 0 {
		return True
	}
	acc := pc.entries[0].Expr()
	for _, e := range pc.entries[1:] {
		acc = MustNewBinary(AND, acc, e.Expr())
	}
	return acc
}

// PrefixConjunction returns True when n is 0, otherwise the conjunction of
// the first n entries' observed-fact expressions. It panics if n is out of
// [0, Len()].
func (pc *PathCondition) PrefixConjunction(n int) Expr {
	if n < 0 || n > len(pc.entries) {
		panic("concolic: PrefixConjunction index out of range")
	}
	if n == 0 {
		return True
	}
	acc := pc.entries[0].Expr()
	for _, e := range pc.entries[1:n] {
		acc = MustNewBinary(AND, acc, e.Expr())
	}
	return acc
}
