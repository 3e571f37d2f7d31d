package concolic

// Sort is the declared type of a symbolic variable or expression: integer,
// real, or string. Sorts drive the coercion and mismatch rules of the
// expression algebra (see expr.go).
type Sort int

const (
	// SortInt is the sort of 64-bit integer variables and constants.
	SortInt Sort = iota
	// SortReal is the sort of floating-point variables and constants.
	SortReal
	// SortString is the sort of string variables and constants.
	SortString
	// SortBool is not a declarable variable sort but is the sort produced
	// by comparisons and boolean connectives.
	SortBool
)

// String renders a sort in the grammar used by expression printing.
func (s Sort) String() string {
	switch s {
	case SortInt:
		return "int"
	case SortReal:
		return "real"
	case SortString:
		return "string"
	case SortBool:
		return "bool"
	default:
		return "unknown"
	}
}
