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

// Package asm implements the symbolic assembly language that sits between
// the compiler's code generator and the encoded word stream the vm package
// executes: a text syntax, an abstract syntax tree, and a two-pass encoder.
//
// # Syntax
//
// One statement per line. Blank lines are ignored. A '#' starts a line
// comment that runs to the end of the line. A statement is either a label,
// an instruction, or a directive:
//
//	label:
//	mnemonic operand[, operand...]
//	.directive ...
//
// Operand forms:
//
//	123          immediate (input operands only)
//	name         immediate, naming a label or .define macro
//	*x           address - read/write mem[x]
//	base[x]      relative - read/write mem[relativeBase+x]
//
// Any operand may carry a binding label, written as a trailing "@ name"; it
// binds name to the address of that exact operand's cell in the encoded
// output, regardless of what value the operand itself evaluates to. This is
// the hook the code generator uses to build self-modifying temporaries
// without naming separate storage for them: a later instruction can target
// "*name" to overwrite the bound operand before it is read.
//
// Output operands (the write side of add/mul/lt/eq, and the sole operand of
// in) may only be address or relative; an immediate there is a syntax
// error, matching the vm package's decode-time rejection of immediate
// write modes.
//
// Mnemonics: add, mul, in, out, jnz, jz, lt, eq, arb, halt - one per vm
// opcode, in the same order. Directives: ".define name value" (a
// zero-width macro, substituted like a label wherever name is later used as
// an immediate), ".int value" (emits one word), ".ascii \"text\"" (emits
// one word per byte of text plus a trailing zero terminator; text supports
// \\, \" and \n escapes).
//
// # Encoding
//
// Encode runs two passes over a parsed program. The first computes the
// offset of every label and binding label and records every .define macro;
// it is a fatal error for a name to be defined twice, by any combination of
// label, binding label, or macro. The second pass substitutes every name
// reference with its resolved offset or macro value and serializes each
// instruction as opcode + 100*mode(a) + 1000*mode(b) + 10000*mode(out),
// followed by its operand words in order.
package asm
