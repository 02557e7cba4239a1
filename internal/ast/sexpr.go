package ast

import (
	"strconv"
	"strings"
)

// SExpr renders node as a compact S-expression, e.g.
//
//	(binary "+" (number 1) (binary "*" (number 2) (number 3)))
//
// Spans are omitted, so two trees print the same iff they have the same
// shape and payloads.
func SExpr(node Node) string {
	var sb strings.Builder
	writeSExpr(&sb, node)
	return sb.String()
}

func writeSExpr(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *NumberExpr:
		sb.WriteString("(number ")
		sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
		sb.WriteByte(')')
	case *VariableExpr:
		sb.WriteString("(variable ")
		sb.WriteString(strconv.Quote(n.Name))
		sb.WriteByte(')')
	case *BinaryExpr:
		sb.WriteString("(binary ")
		sb.WriteString(strconv.Quote(string(n.Op)))
		sb.WriteByte(' ')
		writeSExpr(sb, n.Left)
		sb.WriteByte(' ')
		writeSExpr(sb, n.Right)
		sb.WriteByte(')')
	case *CallExpr:
		sb.WriteString("(call ")
		sb.WriteString(strconv.Quote(n.Callee))
		for _, arg := range n.Args {
			sb.WriteByte(' ')
			writeSExpr(sb, arg)
		}
		sb.WriteByte(')')
	case *Prototype:
		sb.WriteString("(prototype ")
		sb.WriteString(strconv.Quote(n.Name))
		sb.WriteString(" (params")
		for _, p := range n.Params {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Quote(p))
		}
		sb.WriteString("))")
	case *Function:
		sb.WriteString("(function ")
		writeSExpr(sb, n.Proto)
		sb.WriteByte(' ')
		writeSExpr(sb, n.Body)
		sb.WriteByte(')')
	case nil:
		sb.WriteString("nil")
	default:
		sb.WriteString("(unknown)")
	}
}
