package parser

// ============================================================
// Binary operator precedence
// ============================================================

// NoPrecedence is returned for anything that is not a binary operator.
// It is lower than every real rank, so it ends any operator chain.
const NoPrecedence = -1

const (
	precCompare  = 10 // <
	precAdditive = 20 // + -
	precMultiply = 40 // *
)

var binopPrecedence = map[rune]int{
	'<': precCompare,
	'+': precAdditive,
	'-': precAdditive,
	'*': precMultiply,
}

// Precedence returns the binding rank of the binary operator op; higher
// binds tighter. All operators are left-associative.
func Precedence(op rune) int {
	if prec, ok := binopPrecedence[op]; ok {
		return prec
	}
	return NoPrecedence
}

// IsBinaryOp reports whether op is a recognized binary operator.
func IsBinaryOp(op rune) bool {
	return Precedence(op) != NoPrecedence
}
