package concolic

import (
	"fmt"

	"github.com/pkg/errors"
)

// BinOp is the operator of a Binary expression node.
type BinOp int

const (
	EQ BinOp = iota
	NE
	LT
	LE
	GT
	GE
	AND
	OR
	ADD
	SUB
	MUL
	DIV
	REM
)

var binOpNames = map[BinOp]string{
	EQ: "==", NE: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
	AND: "&&", OR: "||", ADD: "+", SUB: "-", MUL: "*", DIV: "/", REM: "%",
}

func (op BinOp) String() string {
	if s, ok := binOpNames[op]; ok {
		return s
	}
	return "?"
}

// IsComparison reports whether op is one of EQ/NE/LT/LE/GT/GE.
func (op BinOp) IsComparison() bool {
	switch op {
	case EQ, NE, LT, LE, GT, GE:
		return true
	default:
		return false
	}
}

// IsBooleanConnective reports whether op is AND or OR.
func (op BinOp) IsBooleanConnective() bool {
	return op == AND || op == OR
}

// IsArithmetic reports whether op is one of ADD/SUB/MUL/DIV/REM.
func (op BinOp) IsArithmetic() bool {
	switch op {
	case ADD, SUB, MUL, DIV, REM:
		return true
	default:
		return false
	}
}

// Flip returns the comparison operator obtained by swapping the operands of
// a comparison (spec.md §4.2): GT<->LT, GE<->LE, EQ and NE are fixed points.
// Flip panics if op is not a comparison; callers that cannot guarantee this
// should check IsComparison first.
func Flip(op BinOp) BinOp {
	switch op {
	case EQ:
		return EQ
	case NE:
		return NE
	case LT:
		return GT
	case GT:
		return LT
	case LE:
		return GE
	case GE:
		return LE
	default:
		panic(fmt.Sprintf("concolic: Flip called on non-comparison op %v", op))
	}
}

// complement returns the comparison operator whose truth value is the
// logical negation of op, for the three operators the Negator rewrites
// directly (EQ<->NE, LT<->GE, LE<->GT). It is the table from spec.md §4.5.
func complement(op BinOp) BinOp {
	switch op {
	case EQ:
		return NE
	case NE:
		return EQ
	case LT:
		return GE
	case GE:
		return LT
	case LE:
		return GT
	case GT:
		return LE
	default:
		panic(fmt.Sprintf("concolic: complement called on non-comparison op %v", op))
	}
}

// UnOp is the operator of a Unary expression node.
type UnOp int

const (
	NOT UnOp = iota
	NEG
)

func (op UnOp) String() string {
	switch op {
	case NOT:
		return "!"
	case NEG:
		return "-"
	default:
		return "?"
	}
}

// Expr is an algebraic term of the constraint expression language: a typed
// tree of variables, constants, and binary/unary operations. Expr values
// are immutable once constructed and are intended to be shared by
// structural reference, forming a DAG rather than being deep-copied.
type Expr interface {
	// String renders the expression in the stable printed grammar used for
	// diagnostics and the §6 JSON output (see SPEC_FULL.md §10).
	String() string
	// Sort returns the expression's sort. It never fails: malformed
	// compositions are rejected at construction time by the New* functions
	// below, so any Expr reachable by a caller already has a valid sort.
	Sort() Sort
	// Equal reports structural equality over the whole tree.
	Equal(other Expr) bool
}

// VarExpr is a reference to a named, sorted symbolic variable.
type VarExpr struct {
	Name string
	sort Sort
}

// NewVar constructs a variable reference of the given sort.
func NewVar(name string, sort Sort) *VarExpr {
	return &VarExpr{Name: name, sort: sort}
}

func (v *VarExpr) String() string { return v.Name }
func (v *VarExpr) Sort() Sort     { return v.sort }
func (v *VarExpr) Equal(other Expr) bool {
	o, ok := other.(*VarExpr)
	return ok && o.Name == v.Name && o.sort == v.sort
}

// IntConst is a 64-bit integer literal.
type IntConst struct{ Value int64 }

func NewIntConst(v int64) *IntConst        { return &IntConst{Value: v} }
func (c *IntConst) String() string         { return fmt.Sprintf("%d", c.Value) }
func (c *IntConst) Sort() Sort             { return SortInt }
func (c *IntConst) Equal(other Expr) bool  { o, ok := other.(*IntConst); return ok && o.Value == c.Value }

// RealConst is a 64-bit floating point literal.
type RealConst struct{ Value float64 }

func NewRealConst(v float64) *RealConst    { return &RealConst{Value: v} }
func (c *RealConst) String() string        { return fmt.Sprintf("%g", c.Value) }
func (c *RealConst) Sort() Sort            { return SortReal }
func (c *RealConst) Equal(other Expr) bool { o, ok := other.(*RealConst); return ok && o.Value == c.Value }

// StrConst is a string literal.
type StrConst struct{ Value string }

func NewStrConst(v string) *StrConst       { return &StrConst{Value: v} }
func (c *StrConst) String() string         { return fmt.Sprintf("%q", c.Value) }
func (c *StrConst) Sort() Sort             { return SortString }
func (c *StrConst) Equal(other Expr) bool  { o, ok := other.(*StrConst); return ok && o.Value == c.Value }

// BinaryExpr is a two-operand node: a comparison, boolean connective, or
// arithmetic operation over Left and Right.
type BinaryExpr struct {
	Op          BinOp
	Left, Right Expr
	sort        Sort
}

// NewBinary constructs a binary expression, enforcing the sort rules of
// spec.md §3: comparisons require compatible (possibly int/real-coerced)
// numeric-or-string operands and yield SortBool; boolean connectives
// require SortBool operands and yield SortBool; arithmetic operators
// require matching numeric sorts (with int/real mixing coerced to real)
// and yield that numeric sort.
func NewBinary(op BinOp, left, right Expr) (*BinaryExpr, error) {
	switch {
	case op.IsComparison():
		if _, err := coerceNumericOrString(left.Sort(), right.Sort()); err != nil {
			return nil, errors.Wrapf(&SortMismatchError{Detail: err.Error()}, "comparison %v", op)
		}
		return &BinaryExpr{Op: op, Left: left, Right: right, sort: SortBool}, nil
	case op.IsBooleanConnective():
		if left.Sort() != SortBool || right.Sort() != SortBool {
			return nil, &SortMismatchError{Detail: fmt.Sprintf(
				"boolean connective %v requires boolean operands, got %s and %s", op, left.Sort(), right.Sort())}
		}
		return &BinaryExpr{Op: op, Left: left, Right: right, sort: SortBool}, nil
	case op.IsArithmetic():
		s, err := coerceNumeric(left.Sort(), right.Sort())
		if err != nil {
			return nil, errors.Wrapf(&SortMismatchError{Detail: err.Error()}, "arithmetic %v", op)
		}
		return &BinaryExpr{Op: op, Left: left, Right: right, sort: s}, nil
	default:
		return nil, &SortMismatchError{Detail: fmt.Sprintf("unknown binary operator %v", op)}
	}
}

// MustNewBinary is NewBinary but panics on error; it exists for building
// expressions from constants the caller already knows are well-sorted (for
// example, internal Negator rewrites).
func MustNewBinary(op BinOp, left, right Expr) *BinaryExpr {
	e, err := NewBinary(op, left, right)
	if err != nil {
		panic(err)
	}
	return e
}

func (b *BinaryExpr) Sort() Sort { return b.sort }

func (b *BinaryExpr) String() string {
	if b.Op.IsBooleanConnective() {
		return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
	}
	return fmt.Sprintf("%s %s %s", b.Left.String(), b.Op, b.Right.String())
}

func (b *BinaryExpr) Equal(other Expr) bool {
	o, ok := other.(*BinaryExpr)
	return ok && o.Op == b.Op && o.Left.Equal(b.Left) && o.Right.Equal(b.Right)
}

// UnaryExpr is a single-operand node: NOT wraps a boolean expression, NEG
// wraps a numeric one.
type UnaryExpr struct {
	Op      UnOp
	Operand Expr
	sort    Sort
}

// NewUnary constructs a unary expression, enforcing that NOT only wraps a
// boolean-sorted operand and NEG only wraps a numeric-sorted one.
func NewUnary(op UnOp, operand Expr) (*UnaryExpr, error) {
	switch op {
	case NOT:
		if operand.Sort() != SortBool {
			return nil, &SortMismatchError{Detail: fmt.Sprintf("NOT requires a boolean operand, got %s", operand.Sort())}
		}
		return &UnaryExpr{Op: NOT, Operand: operand, sort: SortBool}, nil
	case NEG:
		if operand.Sort() != SortInt && operand.Sort() != SortReal {
			return nil, &SortMismatchError{Detail: fmt.Sprintf("NEG requires a numeric operand, got %s", operand.Sort())}
		}
		return &UnaryExpr{Op: NEG, Operand: operand, sort: operand.Sort()}, nil
	default:
		return nil, &SortMismatchError{Detail: fmt.Sprintf("unknown unary operator %v", op)}
	}
}

// MustNewUnary is NewUnary but panics on error.
func MustNewUnary(op UnOp, operand Expr) *UnaryExpr {
	e, err := NewUnary(op, operand)
	if err != nil {
		panic(err)
	}
	return e
}

func (u *UnaryExpr) Sort() Sort    { return u.sort }
func (u *UnaryExpr) String() string { return fmt.Sprintf("%s%s", u.Op, u.Operand.String()) }
func (u *UnaryExpr) Equal(other Expr) bool {
	o, ok := other.(*UnaryExpr)
	return ok && o.Op == u.Op && o.Operand.Equal(u.Operand)
}

// True is the canonical boolean-true constant, used as the conjunction of
// an empty path condition (spec.md §4.3).
var True Expr = boolConst{value: true}

// boolConst is a degenerate 0-ary boolean constant, distinct from IntConst
// so that an empty PathCondition's conjunction prints as "true" rather than
// "1".
type boolConst struct{ value bool }

func (b boolConst) String() string {
	if b.value {
		return "true"
	}
	return "false"
}
func (b boolConst) Sort() Sort { return SortBool }
func (b boolConst) Equal(other Expr) bool {
	o, ok := other.(boolConst)
	return ok && o.value == b.value
}

func coerceNumeric(a, b Sort) (Sort, error) {
	switch {
	case a == SortInt && b == SortInt:
		return SortInt, nil
	case (a == SortInt || a == SortReal) && (b == SortInt || b == SortReal):
		return SortReal, nil
	default:
		return 0, fmt.Errorf("arithmetic operator requires numeric operands, got %s and %s", a, b)
	}
}

func coerceNumericOrString(a, b Sort) (Sort, error) {
	if a == SortString && b == SortString {
		return SortString, nil
	}
	if s, err := coerceNumeric(a, b); err == nil {
		return s, nil
	}
	return 0, fmt.Errorf("comparison requires matching numeric or string operands, got %s and %s", a, b)
}
