package ast

import "scribbit/internal/span"

// NodeToMap converts an AST node to a map suitable for JSON or YAML
// serialization. Every node has a "kind" field.
func NodeToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	// ---- Expressions ----
	case *NumberExpr:
		return m("NumberExpr", n.Span, "value", n.Value)
	case *VariableExpr:
		return m("VariableExpr", n.Span, "name", n.Name)
	case *BinaryExpr:
		return m("BinaryExpr", n.Span,
			"op", string(n.Op),
			"left", NodeToMap(n.Left),
			"right", NodeToMap(n.Right))
	case *CallExpr:
		return m("CallExpr", n.Span,
			"callee", n.Callee,
			"args", exprSlice(n.Args))

	// ---- Declarations ----
	case *Prototype:
		return m("Prototype", n.Span,
			"name", n.Name,
			"params", stringSlice(n.Params))
	case *Function:
		return m("Function", n.Span,
			"proto", NodeToMap(n.Proto),
			"body", NodeToMap(n.Body))

	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

// ProgramToMaps converts a sequence of top-level nodes.
func ProgramToMaps(nodes []TopLevel) []interface{} {
	result := make([]interface{}, len(nodes))
	for i, n := range nodes {
		result[i] = NodeToMap(n)
	}
	return result
}

// ---- helpers ----

// m builds a map with kind, span, and extra key-value pairs.
func m(kind string, s span.Span, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"span": spanToMap(s),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func spanToMap(s span.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": positionToMap(s.Start),
		"end":   positionToMap(s.End),
	}
}

func positionToMap(p span.Position) map[string]interface{} {
	return map[string]interface{}{"offset": p.Offset, "line": p.Line, "column": p.Column}
}

func exprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = NodeToMap(e)
	}
	return result
}

// stringSlice keeps empty parameter lists as [] rather than null.
func stringSlice(ss []string) []interface{} {
	result := make([]interface{}, len(ss))
	for i, s := range ss {
		result[i] = s
	}
	return result
}
