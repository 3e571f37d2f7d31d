package concolic

// Negate returns an expression logically equivalent to ¬expr (C5, the
// Negator). It is total and pure, applying spec.md §4.5's structural rules:
//
//   - a comparison is rewritten to its complement operator (EQ<->NE,
//     LT<->GE, LE<->GT) rather than wrapped in NOT;
//   - AND/OR are rewritten via De Morgan, recursing into both operands;
//   - a NOT is unwrapped (double-negation elimination);
//   - anything else is wrapped in NOT.
//
// Negate never inspects variable bindings, so it is safe to call on
// expressions built from either constants or unresolved variables.
func Negate(expr Expr) Expr {
	switch e := expr.(type) {
	case *BinaryExpr:
		if e.Op.IsComparison() {
			return MustNewBinary(complement(e.Op), e.Left, e.Right)
		}
		if e.Op == AND {
			return MustNewBinary(OR, Negate(e.Left), Negate(e.Right))
		}
		if e.Op == OR {
			return MustNewBinary(AND, Negate(e.Left), Negate(e.Right))
		}
	case *UnaryExpr:
		if e.Op == NOT {
			return e.Operand
		}
	}
	return MustNewUnary(NOT, expr)
}
