package ast

import (
	"encoding/json"
	"testing"

	"github.com/nalgeon/be"
)

func num(v float64) *NumberExpr { return &NumberExpr{Value: v} }
func variable(n string) *VariableExpr { return &VariableExpr{Name: n} }

func sampleFunction() *Function {
	return &Function{
		Proto: &Prototype{Name: "f", Params: []string{"x", "y"}},
		Body: &BinaryExpr{
			Op:   '+',
			Left: variable("x"),
			Right: &CallExpr{
				Callee: "g",
				Args:   []Expr{variable("y"), num(2.5)},
			},
		},
	}
}

func TestSExpr(t *testing.T) {
	be.Equal(t, SExpr(sampleFunction()),
		`(function (prototype "f" (params "x" "y")) (binary "+" (variable "x") (call "g" (variable "y") (number 2.5))))`)

	be.Equal(t, SExpr(&Prototype{Name: "sin", Params: []string{"x"}}), `(prototype "sin" (params "x"))`)
	be.Equal(t, SExpr(&CallExpr{Callee: "now"}), `(call "now")`)
	be.Equal(t, SExpr(nil), "nil")
}

func TestAnonymous(t *testing.T) {
	anon := &Function{Proto: &Prototype{Name: AnonName}, Body: num(1)}
	be.True(t, anon.IsAnonymous())
	be.True(t, !sampleFunction().IsAnonymous())
}

func TestNodeToMapJSON(t *testing.T) {
	data, err := json.Marshal(NodeToMap(sampleFunction()))
	be.Err(t, err, nil)

	var got map[string]interface{}
	be.Err(t, json.Unmarshal(data, &got), nil)
	be.Equal(t, got["kind"], interface{}("Function"))

	proto := got["proto"].(map[string]interface{})
	be.Equal(t, proto["name"], interface{}("f"))
	be.Equal(t, len(proto["params"].([]interface{})), 2)

	body := got["body"].(map[string]interface{})
	be.Equal(t, body["op"], interface{}("+"))
}

func TestEmptyParamsAreList(t *testing.T) {
	data, err := json.Marshal(NodeToMap(&Prototype{Name: "now"}))
	be.Err(t, err, nil)
	be.True(t, json.Valid(data))
	var got map[string]interface{}
	be.Err(t, json.Unmarshal(data, &got), nil)
	be.Equal(t, len(got["params"].([]interface{})), 0)
}
