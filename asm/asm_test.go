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

package asm_test

import (
	"testing"

	"github.com/mbrt/intscript/asm"
	"github.com/mbrt/intscript/vm"
)

func w(xs ...int64) []vm.Word {
	out := make([]vm.Word, len(xs))
	for i, x := range xs {
		out[i] = vm.Word(x)
	}
	return out
}

func mustAssemble(t *testing.T, src string) []vm.Word {
	t.Helper()
	words, err := asm.Assemble("test.asm", src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return words
}

func TestAssembleAddImmediate(t *testing.T) {
	got := mustAssemble(t, "add 100, -1, *result\nresult:\n.int 0\nhalt\n")
	want := w(1101, 100, -1, 4, 0, 99)
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAssembleBindingLabel(t *testing.T) {
	// The first add's output cell (absolute offset 3) is bound to "dest";
	// the second add writes through *dest, meaning it overwrites the
	// first add's own output operand after the first add has run.
	src := "add 1, 2, *scratch @ dest\n" +
		"add 0, 0, *dest\n" +
		"scratch:\n.int 0\nhalt\n"
	got := mustAssemble(t, src)
	want := w(1101, 1, 2, 8, 1101, 0, 0, 3, 0, 99)
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAssembleDefine(t *testing.T) {
	got := mustAssemble(t, ".define SIZE 5\nadd SIZE, 1, *out\nout:\n.int 0\nhalt\n")
	want := w(1101, 5, 1, 4, 0, 99)
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAssembleAscii(t *testing.T) {
	got := mustAssemble(t, ".ascii \"hi\"\nhalt\n")
	want := w(int64('h'), int64('i'), 0, 99)
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAssembleRelativeAndOutput(t *testing.T) {
	got := mustAssemble(t, "arb 1\nout base[-1]\nhalt\n")
	want := w(109, 1, 204, -1, 99)
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDuplicateLabelIsFatal(t *testing.T) {
	_, err := asm.Assemble("test.asm", "a:\na:\nhalt\n")
	if err == nil {
		t.Fatal("expected an error for a duplicate label")
	}
}

func TestUndefinedNameIsFatal(t *testing.T) {
	_, err := asm.Assemble("test.asm", "add 0, missing, *out\nout:\n.int 0\nhalt\n")
	if err == nil {
		t.Fatal("expected an error for an undefined name")
	}
}

func TestOutputOperandCannotBeImmediate(t *testing.T) {
	_, err := asm.Assemble("test.asm", "add 1, 2, 3\nhalt\n")
	if err == nil {
		t.Fatal("expected a parse error for an immediate output operand")
	}
}

func TestFormatRoundTripsThroughParse(t *testing.T) {
	src := "start:\n  add 1, 2, *scratch\n  halt\nscratch:\n  .int 0\n"
	statements, err := asm.Parse("test.asm", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	formatted := asm.Format(statements)
	statements2, err := asm.Parse("test.asm", formatted)
	if err != nil {
		t.Fatalf("Parse(Format(...)): %v\n%s", err, formatted)
	}
	if len(statements) != len(statements2) {
		t.Fatalf("statement count changed across round trip: %d vs %d", len(statements), len(statements2))
	}
}

func equal(a, b []vm.Word) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
