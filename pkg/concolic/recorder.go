package concolic

import "fmt"

// BranchOp is the opcode class of a unary-against-zero branch test
// (spec.md §4.4's IFEQ/IFNE/IFLT/IFGE/IFGT/IFLE row).
type BranchOp int

const (
	IFEQ BranchOp = iota
	IFNE
	IFLT
	IFGE
	IFGT
	IFLE
)

func (op BranchOp) cmpKind() CmpKind {
	switch op {
	case IFEQ:
		return CmpEQ
	case IFNE:
		return CmpNE
	case IFLT:
		return CmpLT
	case IFGE:
		return CmpGE
	case IFGT:
		return CmpGT
	case IFLE:
		return CmpLE
	default:
		panic(fmt.Sprintf("concolic: unknown BranchOp %v", op))
	}
}

// RecorderContext is the Recorder's (C4) per-thread handle: an active PC
// buffer and a reentrancy depth counter. The spec models these as
// thread-local state; in Go there is no true thread-local, so a
// RecorderContext is instead threaded explicitly by the caller, either
// directly, via context.Context (WithRecorder/RecorderFromContext), or
// looked up from Session.ForThread by an opaque per-thread token (see
// session.go and SPEC_FULL.md §5).
type RecorderContext struct {
	session *Session
	pc      *PathCondition

	depth           int
	reentrancyWarned bool
}

// PathCondition returns the buffer this context has been recording into.
func (rc *RecorderContext) PathCondition() *PathCondition { return rc.pc }

// Snapshot returns a read-only copy of the current PC, for the Explorer to
// retain across a Reset.
func (rc *RecorderContext) Snapshot() *PathCondition { return rc.pc.Snapshot() }

// Reset empties the PC buffer and clears the reentrancy depth and one-shot
// diagnostic flag, preparing the context for the next host execution.
func (rc *RecorderContext) Reset() {
	rc.pc.Reset()
	rc.depth = 0
	rc.reentrancyWarned = false
}

// enter applies the reentrancy guard (spec.md §4.4 contract 1): it
// increments depth and reports whether the call is still within bound. The
// caller must invoke the returned release function on every exit path,
// typically via defer.
func (rc *RecorderContext) enter() (proceed bool, release func()) {
	rc.depth++
	bound := rc.session.opts.MaxRecursionDepth
	if rc.depth > bound {
		if !rc.reentrancyWarned {
			rc.reentrancyWarned = true
			rc.session.log.WithFields(map[string]interface{}{
				"depth": rc.depth,
				"bound": bound,
			}).Warn("recorder reentrancy bound exceeded, degrading to concrete result")
		}
		return false, func() { rc.depth-- }
	}
	return true, func() { rc.depth-- }
}

// shouldRecord applies the shutdown gate and relevance filter shared by
// every entry point (spec.md §4.4 contracts 2 and 3). It returns the
// variable-name substitution for each operand (empty string if the operand
// is concrete) and whether at least one operand is user-symbolic.
func (rc *RecorderContext) shouldRecord(tags ...Tag) (labels []string, relevant bool) {
	if rc.session.IsShuttingDown() || !rc.session.opts.InterceptionEnabled {
		return nil, false
	}
	labels = make([]string, len(tags))
	for i, t := range tags {
		if label, ok := rc.session.Labels.FirstSymbolicLabel(t); ok {
			labels[i] = label
			relevant = true
		}
	}
	return labels, relevant
}

func operandExpr(label string, sort Sort, concrete interface{}) Expr {
	if label != "" {
		return NewVar(label, sort)
	}
	return constExpr(sort, concrete)
}

func constExpr(sort Sort, v interface{}) Expr {
	switch sort {
	case SortInt:
		return NewIntConst(toInt64(v))
	case SortReal:
		return NewRealConst(toFloat64(v))
	case SortString:
		return NewStrConst(fmt.Sprintf("%v", v))
	default:
		panic(fmt.Sprintf("concolic: constExpr called with unknown sort %v", sort))
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	default:
		panic(fmt.Sprintf("concolic: expected integer operand, got %T", v))
	}
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	default:
		panic(fmt.Sprintf("concolic: expected real operand, got %T", v))
	}
}

// recordEvent is the shared tail of every entry point: it runs f (which
// should build and append a PCEntry) inside the reentrancy guard, catching
// any internal panic and degrading to "record nothing" per spec.md §4.4's
// failure semantics ("the recorder never raises into host code").
func (rc *RecorderContext) recordEvent(f func()) {
	proceed, release := rc.enter()
	defer release()
	if !proceed {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			rc.session.log.WithField("panic", r).Warn("recorder: internal error building constraint, degrading to no-op")
		}
	}()
	f()
	rc.session.log.WithField("entries", rc.pc.Len()).Debug("recorder: constraint recorded")
}

func (rc *RecorderContext) append(expr Expr) {
	rc.pc.Append(newSimpleEntry(expr, rc.session.nextTimestamp()))
}

// IcmpJump records an integer comparison branch (spec.md §4.4's icmp_jump
// row). v1/v2 are the concrete operands, tag1/tag2 their tags, kind one of
// EQ/NE/LT/LE/GT/GE, and taken the concrete branch outcome. It always
// returns taken unchanged.
func (rc *RecorderContext) IcmpJump(v1, v2 int64, tag1, tag2 Tag, kind CmpKind, taken bool) bool {
	labels, relevant := rc.shouldRecord(tag1, tag2)
	if !relevant {
		return taken
	}
	rc.recordEvent(func() {
		left := operandExpr(labels[0], SortInt, v1)
		right := operandExpr(labels[1], SortInt, v2)
		op := kind.binOp()
		if !taken {
			op = complement(op)
		}
		rc.append(MustNewBinary(op, left, right))
	})
	return taken
}

// AcmpJump records a reference identity test (spec.md §4.4's acmp_jump
// row). kind must be CmpACMPEq or CmpACMPNe. Operands are opaque values
// compared by the host's own identity semantics; the recorder treats them
// as integer-sorted handles for expression-building purposes (identity
// comparisons have no numeric meaning beyond equality/inequality).
func (rc *RecorderContext) AcmpJump(r1, r2 int64, tag1, tag2 Tag, kind CmpKind, taken bool) bool {
	return rc.IcmpJump(r1, r2, tag1, tag2, kind, taken)
}

// Lcmp records a three-way long (64-bit integer) compare (spec.md §4.4's
// lcmp row): the concrete outcome is sign(a-b), clamped to {-1,0,1}.
func (rc *RecorderContext) Lcmp(a, b int64, tag1, tag2 Tag) int8 {
	outcome := signOf(a, b)
	labels, relevant := rc.shouldRecord(tag1, tag2)
	if relevant {
		rc.recordEvent(func() {
			left := operandExpr(labels[0], SortInt, a)
			right := operandExpr(labels[1], SortInt, b)
			rc.pc.Append(newThreeWayEntry(left, right, outcome, rc.session.nextTimestamp()))
		})
	}
	return outcome
}

// Fcmpl records a three-way float compare with the "l" (less) NaN
// convention: NaN yields -1.
func (rc *RecorderContext) Fcmpl(a, b float32, tag1, tag2 Tag) int8 {
	return rc.fcmp(float64(a), float64(b), tag1, tag2, true)
}

// Fcmpg records a three-way float compare with the "g" (greater) NaN
// convention: NaN yields +1.
func (rc *RecorderContext) Fcmpg(a, b float32, tag1, tag2 Tag) int8 {
	return rc.fcmp(float64(a), float64(b), tag1, tag2, false)
}

// Dcmpl records a three-way double compare with the "l" NaN convention.
func (rc *RecorderContext) Dcmpl(a, b float64, tag1, tag2 Tag) int8 {
	return rc.fcmp(a, b, tag1, tag2, true)
}

// Dcmpg records a three-way double compare with the "g" NaN convention.
func (rc *RecorderContext) Dcmpg(a, b float64, tag1, tag2 Tag) int8 {
	return rc.fcmp(a, b, tag1, tag2, false)
}

func (rc *RecorderContext) fcmp(a, b float64, tag1, tag2 Tag, nanIsNegative bool) int8 {
	var outcome int8
	if a != a || b != b { // NaN check without importing math
		if nanIsNegative {
			outcome = -1
		} else {
			outcome = 1
		}
	} else {
		switch {
		case a < b:
			outcome = -1
		case a > b:
			outcome = 1
		default:
			outcome = 0
		}
	}
	labels, relevant := rc.shouldRecord(tag1, tag2)
	if relevant {
		rc.recordEvent(func() {
			left := operandExpr(labels[0], SortReal, a)
			right := operandExpr(labels[1], SortReal, b)
			rc.pc.Append(newThreeWayEntry(left, right, outcome, rc.session.nextTimestamp()))
		})
	}
	return outcome
}

// Branch records a unary-against-zero test (IFEQ/IFNE/IFLT/IFGE/IFGT/IFLE)
// over a tagged integer value (spec.md §4.4's branch row). It returns taken
// unchanged.
func (rc *RecorderContext) Branch(value int64, tag Tag, op BranchOp, taken bool) bool {
	labels, relevant := rc.shouldRecord(tag)
	if !relevant {
		return taken
	}
	rc.recordEvent(func() {
		v := operandExpr(labels[0], SortInt, value)
		kind := op.cmpKind()
		binOp := kind.binOp()
		if !taken {
			binOp = complement(binOp)
		}
		rc.append(MustNewBinary(binOp, v, NewIntConst(0)))
	})
	return taken
}

// SwitchCase records a multi-way select (spec.md §4.4's switch_case row).
// cases lists every concrete value the switch dispatches on; selectedCase
// is the arm actually taken, or -1 for the default arm. Per Design Notes
// §9's "Default switch arm" open question (resolved record-time; see
// DESIGN.md), this materializes the full case-set conjunction immediately
// rather than deferring it to negate time: a concrete arm records
// "value == selectedCase" with the sibling cases as its negation
// candidates, and the default arm records the conjunction of every case's
// disequality with each case equality as a candidate. It returns
// selectedCase unchanged.
func (rc *RecorderContext) SwitchCase(value int64, tag Tag, cases []int64, selectedCase int64) int64 {
	labels, relevant := rc.shouldRecord(tag)
	if !relevant {
		return selectedCase
	}
	rc.recordEvent(func() {
		v := operandExpr(labels[0], SortInt, value)
		rc.pc.Append(newSwitchEntry(v, cases, selectedCase, rc.session.nextTimestamp()))
	})
	return selectedCase
}

// signOf returns sign(a-b) by comparing a and b directly, so that the result
// is correct even where the subtraction a-b would overflow int64.
func signOf(a, b int64) int8 {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
