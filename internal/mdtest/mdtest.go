// Package mdtest extracts table-driven test cases from Markdown documents.
//
// A test case starts at a heading of the form "Test: <name>" and owns the
// fenced code blocks that follow it until the next test heading:
//
//	## Test: precedence
//
//	```scribbit
//	1+2*3;
//	```
//
//	```ast
//	(function (prototype "" (params)) (binary "+" (number 1) (binary "*" (number 2) (number 3))))
//	```
//
// Each case has exactly one input fence and at least one assertion fence.
package mdtest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence is the info string of the source fence.
const InputFence = "scribbit"

// AssertionType is the info string of an assertion fence.
type AssertionType string

const (
	AssertAST    AssertionType = "ast"    // one S-expression per parsed statement
	AssertErrors AssertionType = "errors" // one "Error: ..." line per diagnostic
	AssertEval   AssertionType = "eval"   // evaluator output, one line per value
	AssertTokens AssertionType = "tokens" // one "KIND lexeme" line per token
)

var assertionTypes = map[string]AssertionType{
	string(AssertAST):    AssertAST,
	string(AssertErrors): AssertErrors,
	string(AssertEval):   AssertEval,
	string(AssertTokens): AssertTokens,
}

// Assertion is one expected-output fence.
type Assertion struct {
	Type    AssertionType
	Content string // fence body without the trailing newline
	Line    int    // 1-based line of the fence in the document
}

// Lines splits the assertion body into lines. An empty body has no lines.
func (a Assertion) Lines() []string {
	if a.Content == "" {
		return nil
	}
	return strings.Split(a.Content, "\n")
}

// TestCase is a complete test case extracted from Markdown.
type TestCase struct {
	Name       string
	Input      string
	Assertions []Assertion
}

// Assertion returns the first assertion of type typ.
func (tc TestCase) Assertion(typ AssertionType) (Assertion, bool) {
	for _, a := range tc.Assertions {
		if a.Type == typ {
			return a, true
		}
	}
	return Assertion{}, false
}

// ReadFile extracts the test cases of the Markdown file at path.
func ReadFile(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Extract parses a Markdown document and returns its test cases.
func Extract(source []byte) ([]TestCase, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var current *TestCase

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkSkipChildren, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			current = &TestCase{Name: strings.TrimPrefix(heading, "Test: ")}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineOf(n, source)
			if language == "" {
				return ast.WalkContinue, nil
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
			}

			content := strings.TrimRight(blockContent(n, source), "\n")
			if language == InputFence {
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences in test %q", line, current.Name)
				}
				current.Input = content
				return ast.WalkContinue, nil
			}

			typ, ok := assertionTypes[language]
			if !ok {
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q in test %q", line, language, current.Name)
			}
			current.Assertions = append(current.Assertions, Assertion{Type: typ, Content: content, Line: line})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func validate(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("test %q has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test %q has no assertion fences", tc.Name)
	}
	return nil
}

// nodeText concatenates the text segments below node.
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based line of the fence opener.
func lineOf(block *ast.FencedCodeBlock, source []byte) int {
	var offset int
	if block.Lines().Len() > 0 {
		offset = block.Lines().At(0).Start
	} else if block.Info != nil {
		offset = block.Info.Segment.Start
	}
	// the content starts one line below the opening fence
	line := bytes.Count(source[:offset], []byte("\n"))
	if block.Lines().Len() == 0 {
		line++
	}
	return line
}
