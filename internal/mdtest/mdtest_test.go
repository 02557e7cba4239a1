package mdtest

import (
	"testing"

	"github.com/nalgeon/be"
)

const doc = "# Parser cases\n" +
	"\n" +
	"Prose and untagged fences are ignored.\n" +
	"\n" +
	"```\n" +
	"not a test\n" +
	"```\n" +
	"\n" +
	"## Test: simple call\n" +
	"\n" +
	"```scribbit\n" +
	"foo(1, 2)\n" +
	"```\n" +
	"\n" +
	"```ast\n" +
	"(a)\n" +
	"(b)\n" +
	"```\n" +
	"\n" +
	"```errors\n" +
	"```\n" +
	"\n" +
	"## Test: second\n" +
	"\n" +
	"```scribbit\n" +
	"x\n" +
	"```\n" +
	"\n" +
	"```eval\n" +
	"1\n" +
	"```\n"

func TestExtract(t *testing.T) {
	cases, err := Extract([]byte(doc))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	first := cases[0]
	be.Equal(t, first.Name, "simple call")
	be.Equal(t, first.Input, "foo(1, 2)")
	be.Equal(t, len(first.Assertions), 2)

	astFence, ok := first.Assertion(AssertAST)
	be.True(t, ok)
	be.Equal(t, astFence.Lines(), []string{"(a)", "(b)"})
	be.Equal(t, astFence.Line, 15)

	errFence, ok := first.Assertion(AssertErrors)
	be.True(t, ok)
	be.Equal(t, len(errFence.Lines()), 0)

	_, ok = first.Assertion(AssertEval)
	be.True(t, !ok)

	be.Equal(t, cases[1].Name, "second")
	evalFence, _ := cases[1].Assertion(AssertEval)
	be.Equal(t, evalFence.Content, "1")
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			"fence outside test",
			"```ast\n(x)\n```\n",
			"fence found outside of test case",
		},
		{
			"unknown fence",
			"## Test: t\n\n```scribbit\nx\n```\n\n```python\nx\n```\n",
			`unknown fence language "python"`,
		},
		{
			"missing input",
			"## Test: t\n\n```ast\n(x)\n```\n",
			"has no input fence",
		},
		{
			"missing assertion",
			"## Test: t\n\n```scribbit\nx\n```\n",
			"has no assertion fences",
		},
		{
			"two inputs",
			"## Test: t\n\n```scribbit\nx\n```\n\n```scribbit\ny\n```\n",
			"multiple input fences",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Extract([]byte(test.doc))
			be.Err(t, err, test.want)
		})
	}
}
