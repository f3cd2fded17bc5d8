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

package codegen_test

import (
	"testing"

	"github.com/mbrt/intscript/asm"
	"github.com/mbrt/intscript/codegen"
	"github.com/mbrt/intscript/source"
	"github.com/mbrt/intscript/vm"
)

// compile builds a program out of an in-memory set of modules (path ->
// source text) without touching the filesystem, the way source.Load would
// after reading each file.
func compile(t *testing.T, files map[string]string, root string) []vm.Word {
	t.Helper()
	modules := make(map[string]*source.Module, len(files))
	for path, text := range files {
		m, err := source.Parse(path, text)
		if err != nil {
			t.Fatalf("Parse(%s): %v", path, err)
		}
		modules[path] = m
	}
	ctx, err := codegen.Generate(modules, root)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	words, err := asm.Encode(ctx.Program())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return words
}

// run drives a program to completion, feeding it input (one word at a
// time, 0 once input runs out) and collecting every output word.
func run(t *testing.T, words []vm.Word, input []int64) []int64 {
	t.Helper()
	inst, err := vm.New(words)
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	var output []int64
	next := 0
	for {
		state, err := inst.Resume()
		if err != nil {
			t.Fatalf("Resume: %v", err)
		}
		switch state {
		case vm.Halt:
			return output
		case vm.WaitingForInput:
			var v int64
			if next < len(input) {
				v = input[next]
				next++
			}
			if err := inst.ProvideInput(vm.Word(v)); err != nil {
				t.Fatalf("ProvideInput: %v", err)
			}
		case vm.Output:
			v, err := inst.GetOutput()
			if err != nil {
				t.Fatalf("GetOutput: %v", err)
			}
			output = append(output, int64(v))
		default:
			t.Fatalf("unexpected state %v", state)
		}
	}
}

func TestE1Echo(t *testing.T) {
	src := "function main() {\n" +
		"  var c;\n" +
		"  c = input;\n" +
		"  while c != 0 {\n" +
		"    output c;\n" +
		"    c = input;\n" +
		"  }\n" +
		"  return 0;\n" +
		"}\n"
	words := compile(t, map[string]string{"main.is": src}, "main.is")
	in := []int64{'h', 'i', '\n', 0}
	got := run(t, words, in)
	want := []int64{'h', 'i', '\n'}
	assertEqual(t, got, want)
}

func TestE2Arithmetic(t *testing.T) {
	src := "function main() {\n  output 2*3+4;\n  halt;\n}\n"
	words := compile(t, map[string]string{"main.is": src}, "main.is")
	got := run(t, words, nil)
	assertEqual(t, got, []int64{10})
}

func TestE3ShortCircuit(t *testing.T) {
	src := "function f0() {\n  output 100;\n  return 0;\n}\n" +
		"function f7() {\n  output 200;\n  return 7;\n}\n" +
		"function main() {\n  var r;\n  r = f0() && f7();\n  halt;\n}\n"
	words := compile(t, map[string]string{"main.is": src}, "main.is")
	got := run(t, words, nil)
	assertEqual(t, got, []int64{100})
}

func TestE4Array(t *testing.T) {
	src := "function main() {\n" +
		"  var a[3];\n" +
		"  a[0] = 10;\n" +
		"  a[1] = 20;\n" +
		"  a[2] = 30;\n" +
		"  output a[0] + a[1] + a[2];\n" +
		"}\n"
	words := compile(t, map[string]string{"main.is": src}, "main.is")
	got := run(t, words, nil)
	assertEqual(t, got, []int64{60})
}

func TestE5Import(t *testing.T) {
	files := map[string]string{
		"a.is":    "const K = 5;\n",
		"main.is": "import a;\n\nfunction main() {\n  output K + 1;\n}\n",
	}
	words := compile(t, files, "main.is")
	got := run(t, words, nil)
	assertEqual(t, got, []int64{6})
}

func TestE6String(t *testing.T) {
	src := "function main() {\n" +
		"  const s = \"ab\";\n" +
		"  output *s;\n" +
		"  output *(s + 1);\n" +
		"  output *(s + 2);\n" +
		"}\n"
	words := compile(t, map[string]string{"main.is": src}, "main.is")
	got := run(t, words, nil)
	assertEqual(t, got, []int64{97, 98, 0})
}

func TestImportCycleIsFatal(t *testing.T) {
	files := map[string]string{
		"a.is": "import b;\n",
		"b.is": "import a;\n",
	}
	modules := make(map[string]*source.Module, len(files))
	for path, text := range files {
		m, err := source.Parse(path, text)
		if err != nil {
			t.Fatalf("Parse(%s): %v", path, err)
		}
		modules[path] = m
	}
	if _, err := codegen.Generate(modules, "a.is"); err == nil {
		t.Fatal("expected an import-cycle error")
	}
}

func TestRedeclaredImportIsFatal(t *testing.T) {
	files := map[string]string{
		"a.is":    "const K = 1;\n",
		"main.is": "import a;\nconst K = 2;\nfunction main() {\n  halt;\n}\n",
	}
	modules := make(map[string]*source.Module, len(files))
	for path, text := range files {
		m, err := source.Parse(path, text)
		if err != nil {
			t.Fatalf("Parse(%s): %v", path, err)
		}
		modules[path] = m
	}
	if _, err := codegen.Generate(modules, "main.is"); err == nil {
		t.Fatal("expected a redeclaration error")
	}
}

func assertEqual(t *testing.T, got, want []int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
