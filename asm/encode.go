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

import (
	"github.com/pkg/errors"

	"github.com/mbrt/intscript/vm"
)

func modeOfIn(p InParam) int64   { return int64(p.Mode) }
func modeOfOut(p OutParam) int64 { return int64(p.Mode) }

// modeOf computes the combined mode digit for an instruction's operands,
// in the order the encoded instruction word expects them: mode(a) +
// 10*mode(b) + 100*mode(out) for a three-operand calculation, collapsing
// down for instructions with fewer operands.
func modeOf(i Instruction) int64 {
	switch x := i.(type) {
	case Literal:
		return 0
	case Add:
		return modeOfIn(x.A) + 10*modeOfIn(x.B) + 100*modeOfOut(x.Out)
	case Mul:
		return modeOfIn(x.A) + 10*modeOfIn(x.B) + 100*modeOfOut(x.Out)
	case LessThan:
		return modeOfIn(x.A) + 10*modeOfIn(x.B) + 100*modeOfOut(x.Out)
	case Equals:
		return modeOfIn(x.A) + 10*modeOfIn(x.B) + 100*modeOfOut(x.Out)
	case Input:
		return modeOfOut(x.Out)
	case Output:
		return modeOfIn(x.X)
	case JumpIfTrue:
		return modeOfIn(x.Condition) + 10*modeOfIn(x.Target)
	case JumpIfFalse:
		return modeOfIn(x.Condition) + 10*modeOfIn(x.Target)
	case AdjustRelativeBase:
		return modeOfIn(x.Amount)
	case Halt:
		return 0
	default:
		return 0
	}
}

func baseOpcode(i Instruction) int64 {
	switch i.(type) {
	case Add:
		return int64(vm.OpAdd)
	case Mul:
		return int64(vm.OpMul)
	case Input:
		return int64(vm.OpInput)
	case Output:
		return int64(vm.OpOutput)
	case JumpIfTrue:
		return int64(vm.OpJumpIfTrue)
	case JumpIfFalse:
		return int64(vm.OpJumpIfFalse)
	case LessThan:
		return int64(vm.OpLessThan)
	case Equals:
		return int64(vm.OpEquals)
	case AdjustRelativeBase:
		return int64(vm.OpAdjustRelativeBase)
	case Halt:
		return int64(vm.OpHalt)
	default:
		return 0
	}
}

// opcodeWord computes the first word of an instruction: its opcode plus
// the encoded addressing modes of its operands. A bare Literal encodes to
// itself with no mode arithmetic applied.
func opcodeWord(i Instruction) int64 {
	if l, ok := i.(Literal); ok {
		return int64(l.Value)
	}
	return 100*modeOf(i) + baseOpcode(i)
}

// paramVisitor is called once per operand of an instruction, with the
// operand's binding label (if any) and its 1-based index among the
// instruction's operands - the index the encoded offset of that operand's
// cell is computed from (offset of the opcode word + index).
type paramVisitor func(label string, index int)

func visitParams(i Instruction, visit paramVisitor) {
	switch x := i.(type) {
	case Literal:
	case Add:
		visit(x.A.Label, 1)
		visit(x.B.Label, 2)
		visit(x.Out.Label, 3)
	case Mul:
		visit(x.A.Label, 1)
		visit(x.B.Label, 2)
		visit(x.Out.Label, 3)
	case LessThan:
		visit(x.A.Label, 1)
		visit(x.B.Label, 2)
		visit(x.Out.Label, 3)
	case Equals:
		visit(x.A.Label, 1)
		visit(x.B.Label, 2)
		visit(x.Out.Label, 3)
	case Input:
		visit(x.Out.Label, 1)
	case Output:
		visit(x.X.Label, 1)
	case JumpIfTrue:
		visit(x.Condition.Label, 1)
		visit(x.Target.Label, 2)
	case JumpIfFalse:
		visit(x.Condition.Label, 1)
		visit(x.Target.Label, 2)
	case AdjustRelativeBase:
		visit(x.Amount.Label, 1)
	case Halt:
	}
}

// environment is the result of Encode's first pass: every label, binding
// label, and .define macro resolved to a word value. They share one
// namespace, so a name can be defined at most once across all three kinds.
type environment struct {
	symbols map[string]int64
}

func newEnvironment(statements []Statement) (*environment, error) {
	env := &environment{symbols: make(map[string]int64)}
	set := func(name string, value int64) error {
		if _, exists := env.symbols[name]; exists {
			return errors.Errorf("duplicate definition for %q", name)
		}
		env.symbols[name] = value
		return nil
	}

	var offset int64
	for _, stmt := range statements {
		switch s := stmt.(type) {
		case Label:
			if err := set(s.Name, offset); err != nil {
				return nil, err
			}
		case Instruction:
			var visitErr error
			visitParams(s, func(label string, index int) {
				if label == "" || visitErr != nil {
					return
				}
				if err := set(label, offset+int64(index)); err != nil {
					visitErr = err
				}
			})
			if visitErr != nil {
				return nil, visitErr
			}
			offset += int64(s.Size())
		case Define:
			val, err := env.definedValue(s.Value)
			if err != nil {
				return nil, err
			}
			if err := set(s.Name, val); err != nil {
				return nil, err
			}
		case Int:
			offset++
		case Ascii:
			offset += int64(len(s.Value)) + 1
		}
	}
	return env, nil
}

// definedValue evaluates a .define's value eagerly against whatever has
// been resolved so far. Since .define values are ordinarily literals this
// almost always succeeds immediately; a .define whose value references a
// name defined later in the file is rejected, matching a single top-to-
// bottom resolution pass.
func (env *environment) definedValue(p InParam) (int64, error) {
	switch v := p.Value.(type) {
	case Lit:
		return int64(v), nil
	case Ref:
		if n, ok := env.symbols[string(v)]; ok {
			return n, nil
		}
		return 0, errors.Errorf("undefined name %q", string(v))
	default:
		return 0, errors.Errorf("unresolvable .define value")
	}
}

func (env *environment) resolveImmediate(v Immediate) (int64, error) {
	switch x := v.(type) {
	case Lit:
		return int64(x), nil
	case Ref:
		if n, ok := env.symbols[string(x)]; ok {
			return n, nil
		}
		return 0, errors.Errorf("undefined name %q", string(x))
	default:
		return 0, errors.Errorf("unresolvable immediate")
	}
}

func (env *environment) resolveIn(p InParam) (int64, error) {
	return env.resolveImmediate(p.Value)
}

func (env *environment) resolveOut(p OutParam) (int64, error) {
	return env.resolveImmediate(p.Value)
}

// Encode runs the two-pass assembly algorithm over statements and returns
// the encoded word stream.
func Encode(statements []Statement) ([]vm.Word, error) {
	env, err := newEnvironment(statements)
	if err != nil {
		return nil, errors.Wrap(err, "Encode")
	}
	var out []vm.Word
	for _, stmt := range statements {
		switch s := stmt.(type) {
		case Label:
			// no words emitted
		case Instruction:
			words, err := encodeInstruction(env, s)
			if err != nil {
				return nil, errors.Wrap(err, "Encode")
			}
			out = append(out, words...)
		case Define:
			// no words emitted
		case Int:
			v, err := env.resolveImmediate(s.Value)
			if err != nil {
				return nil, errors.Wrap(err, "Encode")
			}
			out = append(out, vm.Word(v))
		case Ascii:
			for _, b := range []byte(s.Value) {
				out = append(out, vm.Word(b))
			}
			out = append(out, 0)
		}
	}
	return out, nil
}

func encodeInstruction(env *environment, i Instruction) ([]vm.Word, error) {
	if l, ok := i.(Literal); ok {
		return []vm.Word{l.Value}, nil
	}
	head := vm.Word(opcodeWord(i))
	var params []int64
	var err error
	switch x := i.(type) {
	case Add:
		params, err = resolveCalc(env, x.A, x.B, x.Out)
	case Mul:
		params, err = resolveCalc(env, x.A, x.B, x.Out)
	case LessThan:
		params, err = resolveCalc(env, x.A, x.B, x.Out)
	case Equals:
		params, err = resolveCalc(env, x.A, x.B, x.Out)
	case Input:
		var v int64
		v, err = env.resolveOut(x.Out)
		params = []int64{v}
	case Output:
		var v int64
		v, err = env.resolveIn(x.X)
		params = []int64{v}
	case JumpIfTrue:
		params, err = resolveJump(env, x.Condition, x.Target)
	case JumpIfFalse:
		params, err = resolveJump(env, x.Condition, x.Target)
	case AdjustRelativeBase:
		var v int64
		v, err = env.resolveIn(x.Amount)
		params = []int64{v}
	case Halt:
		params = nil
	}
	if err != nil {
		return nil, err
	}
	words := make([]vm.Word, 0, 1+len(params))
	words = append(words, head)
	for _, p := range params {
		words = append(words, vm.Word(p))
	}
	return words, nil
}

func resolveCalc(env *environment, a, b InParam, out OutParam) ([]int64, error) {
	av, err := env.resolveIn(a)
	if err != nil {
		return nil, err
	}
	bv, err := env.resolveIn(b)
	if err != nil {
		return nil, err
	}
	ov, err := env.resolveOut(out)
	if err != nil {
		return nil, err
	}
	return []int64{av, bv, ov}, nil
}

func resolveJump(env *environment, cond, target InParam) ([]int64, error) {
	cv, err := env.resolveIn(cond)
	if err != nil {
		return nil, err
	}
	tv, err := env.resolveIn(target)
	if err != nil {
		return nil, err
	}
	return []int64{cv, tv}, nil
}
