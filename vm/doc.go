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

// Package vm implements the encoded-program virtual machine: a flat,
// sparsely-allocated array of signed 64-bit words, an instruction pointer, a
// relative base register, and ten opcodes.
//
// Memory is addressed from 0 and has no fixed upper bound; it is allocated in
// 1024-word pages on first touch (by either a read or a write) and reads of
// untouched cells return zero. A word can be addressed one of three ways,
// depending on the decoded mode of the operand that names it:
//
//	address     mem[value]
//	immediate   value
//	relative    mem[relativeBase + value]
//
// Every instruction word factors as:
//
//	opcode + 100*mode(a) + 1000*mode(b) + 10000*mode(out)
//
// where the unused mode positions for a given opcode are simply absent from
// the word's decimal expansion (add/mul/less_than/equals use all three;
// input/output/adjust_relative_base use only mode(a)). Writing through an
// immediate-mode operand is always illegal and is diagnosed as a fatal
// decode error, matching the reference machine.
//
// Execution is cooperative: Resume runs until the program needs input,
// produces output, or halts, then returns without blocking. Callers drive the
// suspend points with ProvideInput and GetOutput. This lets the VM be wired
// to any transport - a pipe, a terminal, a test harness - without the core
// package knowing anything about where words come from or go.
package vm
