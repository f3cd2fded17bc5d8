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

package asm

import "github.com/mbrt/intscript/vm"

// Immediate is either a literal word or a name that resolves to one during
// encoding (a label or a .define macro).
type Immediate interface{ isImmediate() }

// Lit is a literal word, already fully resolved.
type Lit vm.Word

func (Lit) isImmediate() {}

// Ref is a name reference, resolved during Encode's second pass (a
// .define's own value is resolved in the first pass, when it is reached).
type Ref string

func (Ref) isImmediate() {}

// Mode says how an operand's word is turned into an address or value; the
// numeric value matches the mode digit used by the encoded instruction
// word and by vm.Mode.
type Mode int

const (
	Address       Mode = 0
	ModeImmediate Mode = 1
	Relative      Mode = 2
)

// InParam is an operand that may be read: address, immediate, or relative.
type InParam struct {
	Label string // binding label, "" if none
	Mode  Mode
	Value Immediate
}

// OutParam is an operand that may be written: address or relative only.
type OutParam struct {
	Label string
	Mode  Mode
	Value Immediate
}

// AsInParam converts an OutParam to the equivalent InParam, used when an
// instruction's write-operand also needs to be read as a value (none of the
// current instructions do this, but it mirrors the reference AST's
// converting constructor and keeps the two operand kinds interchangeable
// wherever an OutParam's mode is legal for input, too).
func AsInParam(o OutParam) InParam {
	return InParam{Label: o.Label, Mode: o.Mode, Value: o.Value}
}

// Instruction is one machine instruction, one of the ten vm opcodes plus
// the bare Literal pseudo-instruction.
type Instruction interface {
	Statement
	isInstruction()
	// Size is the number of words this instruction occupies once encoded,
	// including the opcode word.
	Size() int
}

// Literal is a single word emitted verbatim, with no opcode arithmetic
// applied to it. It has no text syntax; it exists so that a hand-built AST
// can splice raw words into the instruction stream.
type Literal struct{ Value vm.Word }

func (Literal) isStatement()   {}
func (Literal) isInstruction() {}
func (Literal) Size() int      { return 1 }

// Add computes A+B and stores the result in Out.
type Add struct{ A, B InParam; Out OutParam }

func (Add) isStatement()   {}
func (Add) isInstruction() {}
func (Add) Size() int      { return 4 }

// Mul computes A*B and stores the result in Out.
type Mul struct{ A, B InParam; Out OutParam }

func (Mul) isStatement()   {}
func (Mul) isInstruction() {}
func (Mul) Size() int      { return 4 }

// LessThan stores 1 in Out if A<B, else 0.
type LessThan struct{ A, B InParam; Out OutParam }

func (LessThan) isStatement()   {}
func (LessThan) isInstruction() {}
func (LessThan) Size() int      { return 4 }

// Equals stores 1 in Out if A==B, else 0.
type Equals struct{ A, B InParam; Out OutParam }

func (Equals) isStatement()   {}
func (Equals) isInstruction() {}
func (Equals) Size() int      { return 4 }

// Input suspends the machine for one word of input, to be written to Out.
type Input struct{ Out OutParam }

func (Input) isStatement()   {}
func (Input) isInstruction() {}
func (Input) Size() int      { return 2 }

// Output suspends the machine with X as the produced value.
type Output struct{ X InParam }

func (Output) isStatement()   {}
func (Output) isInstruction() {}
func (Output) Size() int      { return 2 }

// JumpIfTrue jumps to Target if Condition is nonzero.
type JumpIfTrue struct{ Condition, Target InParam }

func (JumpIfTrue) isStatement()   {}
func (JumpIfTrue) isInstruction() {}
func (JumpIfTrue) Size() int      { return 3 }

// JumpIfFalse jumps to Target if Condition is zero.
type JumpIfFalse struct{ Condition, Target InParam }

func (JumpIfFalse) isStatement()   {}
func (JumpIfFalse) isInstruction() {}
func (JumpIfFalse) Size() int      { return 3 }

// AdjustRelativeBase adds Amount to the relative base register.
type AdjustRelativeBase struct{ Amount InParam }

func (AdjustRelativeBase) isStatement()   {}
func (AdjustRelativeBase) isInstruction() {}
func (AdjustRelativeBase) Size() int      { return 2 }

// Halt stops the machine.
type Halt struct{}

func (Halt) isStatement()   {}
func (Halt) isInstruction() {}
func (Halt) Size() int      { return 1 }

// Directive is one of the three assembler directives.
type Directive interface {
	Statement
	isDirective()
}

// Define binds Name to Value as a macro: every later immediate reference to
// Name resolves to Value, exactly like a label, but Define itself occupies
// no words in the encoded output.
type Define struct {
	Name  string
	Value InParam
}

func (Define) isStatement() {}
func (Define) isDirective() {}

// Int emits a single word.
type Int struct{ Value Immediate }

func (Int) isStatement() {}
func (Int) isDirective() {}

// Ascii emits one word per byte of Value, followed by a zero terminator
// word.
type Ascii struct{ Value string }

func (Ascii) isStatement() {}
func (Ascii) isDirective() {}

// Statement is one line of assembly: a label, an instruction, or a
// directive.
type Statement interface{ isStatement() }

// Label defines Name as the offset of the next word emitted.
type Label struct{ Name string }

func (Label) isStatement() {}
