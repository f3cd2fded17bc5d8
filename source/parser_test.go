// This file is part of intscript - https://github.com/mbrt/intscript
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source_test

import (
	"testing"

	"github.com/mbrt/intscript/source"
)

func TestParseFunctionDefinition(t *testing.T) {
	src := "function add(a, b) {\n" +
		"  return a + b;\n" +
		"}\n"
	m, err := source.Parse("test.is", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Body) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(m.Body))
	}
	fn, ok := m.Body[0].(source.FunctionDef)
	if !ok {
		t.Fatalf("expected a FunctionDef, got %T", m.Body[0])
	}
	if fn.Name != "add" || len(fn.Parameters) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	ret, ok := fn.Body[0].(source.Return)
	if !ok {
		t.Fatalf("expected a Return, got %T", fn.Body[0])
	}
	add, ok := ret.Value.(source.Add)
	if !ok {
		t.Fatalf("expected Add, got %T", ret.Value)
	}
	if add.Left != (source.Name{Value: "a"}) || add.Right != (source.Name{Value: "b"}) {
		t.Fatalf("unexpected operands: %+v", add)
	}
}

func TestParseComparisonDesugaring(t *testing.T) {
	tests := []struct {
		src  string
		want source.Expr
	}{
		{"a > b;", source.LessThan{Left: source.Name{Value: "b"}, Right: source.Name{Value: "a"}}},
		{"a >= b;", source.Equals{Left: source.LessThan{Left: source.Name{Value: "a"}, Right: source.Name{Value: "b"}}, Right: source.IntLit{Value: 0}}},
		{"a != b;", source.Equals{Left: source.Equals{Left: source.Name{Value: "a"}, Right: source.Name{Value: "b"}}, Right: source.IntLit{Value: 0}}},
	}
	for _, tt := range tests {
		src := "function f() {\n  output " + tt.src + "\n}\n"
		m, err := source.Parse("test.is", src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.src, err)
		}
		fn := m.Body[0].(source.FunctionDef)
		out := fn.Body[0].(source.Output)
		if out.Value != tt.want {
			t.Fatalf("%q: got %#v, want %#v", tt.src, out.Value, tt.want)
		}
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	src := "function f(x) {\n" +
		"  if x < 0 {\n" +
		"    return 0;\n" +
		"  } else if x == 0 {\n" +
		"    return 1;\n" +
		"  } else {\n" +
		"    return 2;\n" +
		"  }\n" +
		"}\n"
	m, err := source.Parse("test.is", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := m.Body[0].(source.FunctionDef)
	top, ok := fn.Body[0].(source.If)
	if !ok {
		t.Fatalf("expected If, got %T", fn.Body[0])
	}
	if len(top.Else) != 1 {
		t.Fatalf("expected a single nested If in Else, got %d statements", len(top.Else))
	}
	if _, ok := top.Else[0].(source.If); !ok {
		t.Fatalf("expected nested If, got %T", top.Else[0])
	}
}

func TestParseWhileBreakContinue(t *testing.T) {
	src := "function f() {\n" +
		"  while 1 {\n" +
		"    break;\n" +
		"    continue;\n" +
		"  }\n" +
		"}\n"
	m, err := source.Parse("test.is", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := m.Body[0].(source.FunctionDef)
	loop, ok := fn.Body[0].(source.While)
	if !ok {
		t.Fatalf("expected While, got %T", fn.Body[0])
	}
	if len(loop.Body) != 2 {
		t.Fatalf("expected 2 statements in loop body, got %d", len(loop.Body))
	}
	if _, ok := loop.Body[0].(source.Break); !ok {
		t.Fatalf("expected Break, got %T", loop.Body[0])
	}
	if _, ok := loop.Body[1].(source.Continue); !ok {
		t.Fatalf("expected Continue, got %T", loop.Body[1])
	}
}

func TestParseArrayDeclarationAndIndex(t *testing.T) {
	src := "function f() {\n" +
		"  var buf[10];\n" +
		"  buf[0] = 1;\n" +
		"}\n"
	m, err := source.Parse("test.is", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := m.Body[0].(source.FunctionDef)
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body))
	}
	decl, ok := fn.Body[0].(source.DeclareArray)
	if !ok {
		t.Fatalf("expected DeclareArray, got %T", fn.Body[0])
	}
	if decl.Name != "buf" || decl.Size != (source.IntLit{Value: 10}) {
		t.Fatalf("unexpected array declaration: %+v", decl)
	}
	assign, ok := fn.Body[1].(source.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %T", fn.Body[1])
	}
	if _, ok := assign.Left.(source.Read); !ok {
		t.Fatalf("expected Read lvalue, got %T", assign.Left)
	}
}

func TestParseImportsAndContext(t *testing.T) {
	m, err := source.Parse("dir/m.is", "import a.b.c;\n\nfunction f() {\n}\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(m.Imports))
	}
	got := m.Imports[0].Resolve(m.Context())
	want := "dir/a/b/c.is"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseStringLiteralAndOutput(t *testing.T) {
	src := "function f() {\n  output \"hi\\n\";\n}\n"
	m, err := source.Parse("test.is", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := m.Body[0].(source.FunctionDef)
	out := fn.Body[0].(source.Output)
	str, ok := out.Value.(source.StrLit)
	if !ok {
		t.Fatalf("expected StrLit, got %T", out.Value)
	}
	if str.Value != "hi\n" {
		t.Fatalf("got %q, want %q", str.Value, "hi\n")
	}
}

func TestParseUnaryMinusAndDereference(t *testing.T) {
	src := "function f(p) {\n  return -*p;\n}\n"
	m, err := source.Parse("test.is", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := m.Body[0].(source.FunctionDef)
	ret := fn.Body[0].(source.Return)
	sub, ok := ret.Value.(source.Sub)
	if !ok {
		t.Fatalf("expected Sub (desugared negate), got %T", ret.Value)
	}
	if sub.Left != (source.IntLit{Value: 0}) {
		t.Fatalf("expected negate to subtract from 0, got %+v", sub.Left)
	}
	if _, ok := sub.Right.(source.Read); !ok {
		t.Fatalf("expected Read, got %T", sub.Right)
	}
}

func TestParseTruncatedFunctionHeaderError(t *testing.T) {
	_, err := source.Parse("test.is", "function f(\n")
	if err == nil {
		t.Fatal("expected a parse error")
	}
}
