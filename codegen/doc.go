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

// Package codegen lowers a set of parsed source modules (see package
// source) into a flat assembly program (see package asm) for a machine
// with no call stack, no return instruction, and no register file beyond
// an instruction pointer and a relative base.
//
// # Calling convention
//
// Every function F with parameters p1..pk owns fixed, statically
// allocated storage:
//
//	arg_F_p1 : .int 0        ; parameter slots
//	...
//	arg_F_pk : .int 0
//	func_F_output : .int 0   ; address the caller wants the result written to
//	func_F_return : .int 0   ; address to jump back to
//	func_F        : <code>
//	lv_F_0 : .int 0          ; local slots, sized to the deepest scope
//	...
//
// A call writes its arguments into the callee's parameter slots (found by
// walking back from the callee's entry label), writes its own return
// address and a scratch cell's address into func_F_return/func_F_output,
// and jumps to func_F. A return writes through func_F_output and jumps
// through func_F_return. Because there is exactly one copy of each slot,
// only one activation of a function may be live at a time: recursion is
// not supported (see spec's design notes).
//
// # Indirect loads and stores
//
// Dereferencing a runtime-computed address (source's read(a) expression,
// or a call's indirect argument/return plumbing) has no native
// instruction: the machine only ever dereferences an *operand*, never a
// value already in a register. The generator fakes one level of extra
// indirection with the "binding label" mechanism: it emits an operand
// whose value is an inert placeholder (0) but which is tagged with a
// fresh label, so a separate, earlier instruction can overwrite that
// exact cell with the address to dereference before the placeholder
// operand is ever read. See genIndirectRead/genIndirectWrite.
package codegen
