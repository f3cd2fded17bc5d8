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

package vm_test

import (
	"strings"
	"testing"

	"github.com/mbrt/intscript/vm"
)

func words(xs ...int64) []vm.Word {
	w := make([]vm.Word, len(xs))
	for i, x := range xs {
		w[i] = vm.Word(x)
	}
	return w
}

// run drives an instance to completion, feeding it successive values from
// input whenever it suspends for one and collecting every value it outputs.
func run(t *testing.T, i *vm.Instance, input []vm.Word) []vm.Word {
	t.Helper()
	var out []vm.Word
	for {
		st, err := i.Resume()
		if err != nil {
			t.Fatalf("Resume: %v", err)
		}
		switch st {
		case vm.WaitingForInput:
			if len(input) == 0 {
				t.Fatalf("program wants input, none left")
			}
			if err := i.ProvideInput(input[0]); err != nil {
				t.Fatalf("ProvideInput: %v", err)
			}
			input = input[1:]
		case vm.Output:
			v, err := i.GetOutput()
			if err != nil {
				t.Fatalf("GetOutput: %v", err)
			}
			out = append(out, v)
		case vm.Halt:
			return out
		default:
			t.Fatalf("unexpected state %v", st)
		}
	}
}

func TestAddImmediate(t *testing.T) {
	// 1101,100,-1,4,0,99 writes 99 to address 4 and halts: add(100,-1)->99.
	prog := words(1101, 100, -1, 4, 0, 99)
	i, err := vm.New(prog)
	if err != nil {
		t.Fatal(err)
	}
	run(t, i, nil)
	if got := i.PeekWord(4); got != 99 {
		t.Fatalf("mem[4] = %d, want 99", got)
	}
}

func TestEchoInput(t *testing.T) {
	// in *0; out *0; halt  (echo one value straight back out)
	prog := words(3, 0, 4, 0, 99)
	i, err := vm.New(prog)
	if err != nil {
		t.Fatal(err)
	}
	out := run(t, i, words(42))
	if len(out) != 1 || out[0] != 42 {
		t.Fatalf("out = %v, want [42]", out)
	}
}

func TestRelativeBaseAndQuine(t *testing.T) {
	// A program that copies itself to the output, one word at a time,
	// using relative-base addressing (adapted from the canonical
	// quine-style diagnostic program for this machine).
	src := "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	prog, err := vm.ParseProgram(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	i, err := vm.New(prog)
	if err != nil {
		t.Fatal(err)
	}
	out := run(t, i, nil)
	if len(out) != len(prog) {
		t.Fatalf("got %d outputs, want %d", len(out), len(prog))
	}
	for idx, w := range prog {
		if out[idx] != w {
			t.Fatalf("out[%d] = %d, want %d", idx, out[idx], w)
		}
	}
}

func TestIllegalOpcode(t *testing.T) {
	prog := words(12345)
	i, err := vm.New(prog)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := i.Resume(); err == nil {
		t.Fatal("expected an error for an illegal opcode")
	}
}

func TestImmediateWriteOperandIsIllegal(t *testing.T) {
	// add with the output operand (mode digit in the ten-thousands place)
	// set to immediate (1) must be rejected at decode time.
	prog := words(11101, 1, 1, 0, 99)
	i, err := vm.New(prog)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := i.Resume(); err == nil {
		t.Fatal("expected an error for an immediate write operand")
	}
}

func TestSparseMemoryReadsZero(t *testing.T) {
	prog := words(99)
	i, err := vm.New(prog)
	if err != nil {
		t.Fatal(err)
	}
	if got := i.PeekWord(1_000_000); got != 0 {
		t.Fatalf("untouched cell = %d, want 0", got)
	}
}

func TestParseAndFormatProgramRoundTrip(t *testing.T) {
	const src = "1,0,0,3,99"
	prog, err := vm.ParseProgram(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := vm.FormatProgram(&sb, prog); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(sb.String()); got != src {
		t.Fatalf("FormatProgram round trip = %q, want %q", got, src)
	}
}
