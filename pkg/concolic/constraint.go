package concolic

import "fmt"

// CmpKind is the comparison kind recorded for one constraint event. It is a
// superset of BinOp's comparison operators: it also names the three-way
// numeric compares (LCMP/FCMPL/FCMPG/DCMPL/DCMPG) and reference-identity
// compares (ACMP_EQ/ACMP_NE) that spec.md §3 calls out as distinct from a
// plain binary comparison.
type CmpKind int

const (
	CmpEQ CmpKind = iota
	CmpNE
	CmpLT
	CmpLE
	CmpGT
	CmpGE
	CmpLCMP
	CmpFCMPL
	CmpFCMPG
	CmpDCMPL
	CmpDCMPG
	CmpACMPEq
	CmpACMPNe
)

// IsThreeWay reports whether kind is one of the three-way numeric compares.
func (k CmpKind) IsThreeWay() bool {
	switch k {
	case CmpLCMP, CmpFCMPL, CmpFCMPG, CmpDCMPL, CmpDCMPG:
		return true
	default:
		return false
	}
}

// binOp converts a branch-style CmpKind (EQ/NE/LT/LE/GT/GE or an ACMP
// variant) to the corresponding BinOp. It panics for three-way kinds, which
// have no single BinOp — see PCEntry.Candidates for how those are handled.
func (k CmpKind) binOp() BinOp {
	switch k {
	case CmpEQ, CmpACMPEq:
		return EQ
	case CmpNE, CmpACMPNe:
		return NE
	case CmpLT:
		return LT
	case CmpLE:
		return LE
	case CmpGT:
		return GT
	case CmpGE:
		return GE
	default:
		panic(fmt.Sprintf("concolic: binOp called on three-way CmpKind %v", k))
	}
}

// Constraint is the immutable record of one comparison or branch event, as
// specified in spec.md §3: {left, right, op, outcome, timestamp}. The
// Recorder does not build Constraint values; it appends PCEntry values to
// the PathCondition directly. Timestamp is a monotonic counter used only to
// order diagnostic output, never for solving.
type Constraint struct {
	Left, Right Expr
	Op          CmpKind
	// BoolOutcome holds the concrete branch result for non-three-way kinds.
	BoolOutcome bool
	// ThreeWayOutcome holds the concrete -1/0/1 sign for three-way kinds.
	ThreeWayOutcome int8
	Timestamp       int64
}

// PCEntry is one element of a PathCondition: the observed fact to conjoin,
// plus the alternative fact(s) the Path Explorer may substitute when this
// position is chosen as the suffix to negate (spec.md §4.7 step 3, §9
// "Three-way compares").
type PCEntry interface {
	// Expr is the observed-fact expression, used to build the PC's
	// conjunction.
	Expr() Expr
	// Candidates returns the alternative expression(s) to try in place of
	// Expr when this entry is the suffix negation target. A plain
	// comparison or boolean event has exactly one candidate (its logical
	// negation); a three-way compare has exactly two (the two sign buckets
	// other than the one observed).
	Candidates() []Expr
	// Timestamp is the monotonic recording order, used only for
	// diagnostics.
	Timestamp() int64
	String() string
}

// simpleEntry is a PCEntry for an ordinary branch or identity comparison:
// one observed expression, one negated alternative. Switch-case events use
// switchEntry instead.
type simpleEntry struct {
	expr Expr
	ts   int64
}

// newSimpleEntry wraps an already-constructed observed-fact expression.
func newSimpleEntry(expr Expr, ts int64) simpleEntry {
	return simpleEntry{expr: expr, ts: ts}
}

func (e simpleEntry) Expr() Expr          { return e.expr }
func (e simpleEntry) Candidates() []Expr  { return []Expr{Negate(e.expr)} }
func (e simpleEntry) Timestamp() int64    { return e.ts }
func (e simpleEntry) String() string      { return e.expr.String() }

// threeWayEntry is a PCEntry for a three-way numeric compare (lcmp,
// fcmpl/fcmpg, dcmpl/dcmpg). The observed fact is "sign(left-right) ==
// sign", expressed as the matching comparison of Left and Right directly;
// the two alternative sign buckets are the other two comparisons.
type threeWayEntry struct {
	left, right Expr
	sign        int8 // -1, 0, or +1
	ts          int64
}

func newThreeWayEntry(left, right Expr, sign int8, ts int64) threeWayEntry {
	return threeWayEntry{left: left, right: right, sign: sign, ts: ts}
}

func (e threeWayEntry) signExpr(sign int8) Expr {
	var op BinOp
	switch {
	case sign < 0:
		op = LT
	case sign == 0:
		op = EQ
	default:
		op = GT
	}
	return MustNewBinary(op, e.left, e.right)
}

func (e threeWayEntry) Expr() Expr { return e.signExpr(e.sign) }

func (e threeWayEntry) Candidates() []Expr {
	candidates := make([]Expr, 0, 2)
	for _, s := range []int8{-1, 0, 1} {
		if s != e.sign {
			candidates = append(candidates, e.signExpr(s))
		}
	}
	return candidates
}

func (e threeWayEntry) Timestamp() int64 { return e.ts }
func (e threeWayEntry) String() string   { return e.Expr().String() }

// switchEntry is a PCEntry for a multi-way select (spec.md §4.4's
// switch_case row). It materializes the full case-set conjunction at
// record time (spec.md §9's "Default switch arm" open question, resolved
// in DESIGN.md): a concrete arm observes "value == selectedCase" with
// every other declared case as a negation candidate, and the default arm
// observes the conjunction of every case's disequality with each case
// equality as a candidate — so suffix negation can reach every arm of the
// switch directly instead of falling back to an unbounded complement.
type switchEntry struct {
	value    Expr
	cases    []int64
	selected int64 // -1 denotes the default arm
	ts       int64
}

func newSwitchEntry(value Expr, cases []int64, selected int64, ts int64) switchEntry {
	return switchEntry{value: value, cases: cases, selected: selected, ts: ts}
}

func (e switchEntry) caseExpr(c int64) Expr {
	return MustNewBinary(EQ, e.value, NewIntConst(c))
}

func (e switchEntry) Expr() Expr {
	if e.selected != -1 {
		return e.caseExpr(e.selected)
	}
	if len(e.cases) == 0 {
		return True
	}
	acc := MustNewBinary(NE, e.value, NewIntConst(e.cases[0]))
	for _, c := range e.cases[1:] {
		acc = MustNewBinary(AND, acc, MustNewBinary(NE, e.value, NewIntConst(c)))
	}
	return acc
}

func (e switchEntry) Candidates() []Expr {
	candidates := make([]Expr, 0, len(e.cases))
	for _, c := range e.cases {
		if c == e.selected {
			continue
		}
		candidates = append(candidates, e.caseExpr(c))
	}
	return candidates
}

func (e switchEntry) Timestamp() int64 { return e.ts }
func (e switchEntry) String() string   { return e.Expr().String() }
