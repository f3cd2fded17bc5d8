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

package codegen

import (
	"github.com/pkg/errors"

	"github.com/mbrt/intscript/asm"
	"github.com/mbrt/intscript/source"
)

var (
	litZero = asm.InParam{Mode: asm.ModeImmediate, Value: asm.Lit(0)}
	litOne  = asm.InParam{Mode: asm.ModeImmediate, Value: asm.Lit(1)}
)

func addrIn(label string) asm.InParam   { return asm.InParam{Mode: asm.Address, Value: asm.Ref(label)} }
func addrOut(label string) asm.OutParam { return asm.OutParam{Mode: asm.Address, Value: asm.Ref(label)} }
func immIn(label string) asm.InParam    { return asm.InParam{Mode: asm.ModeImmediate, Value: asm.Ref(label)} }

// genExpr lowers e to a sequence of instructions appended to fg.body and
// returns the operand holding its value.
func (fg *funcGen) genExpr(e source.Expr) (asm.InParam, error) {
	switch v := e.(type) {
	case source.IntLit:
		return asm.InParam{Mode: asm.ModeImmediate, Value: asm.Lit(v.Value)}, nil
	case source.StrLit:
		return immIn(fg.ctx.internString(v.Value)), nil
	case source.Name:
		return fg.resolveIn(v.Value)
	case source.Input:
		slot := fg.newTemp()
		fg.emit(asm.Input{Out: addrOut(slot)})
		return addrIn(slot), nil
	case source.Read:
		ptr, err := fg.genAddr(v.Address)
		if err != nil {
			return asm.InParam{}, err
		}
		return fg.genIndirectRead(ptr), nil
	case source.Add:
		return fg.genBinary("add", v.Left, v.Right)
	case source.Sub:
		return fg.genSub(v.Left, v.Right)
	case source.Mul:
		return fg.genBinary("mul", v.Left, v.Right)
	case source.LessThan:
		return fg.genBinary("lt", v.Left, v.Right)
	case source.Equals:
		return fg.genBinary("eq", v.Left, v.Right)
	case source.LogicalAnd:
		return fg.genAnd(v.Left, v.Right)
	case source.LogicalOr:
		return fg.genOr(v.Left, v.Right)
	case source.Call:
		return fg.genCall(v)
	default:
		return asm.InParam{}, errors.Errorf("codegen: unsupported expression %T", e)
	}
}

// genBinary evaluates left and right, emits the three-address instruction
// named by stem with a fresh local temporary as its output, and returns
// that temporary as the expression's value.
func (fg *funcGen) genBinary(stem string, left, right source.Expr) (asm.InParam, error) {
	l, err := fg.genExpr(left)
	if err != nil {
		return asm.InParam{}, err
	}
	r, err := fg.genExpr(right)
	if err != nil {
		return asm.InParam{}, err
	}
	result := fg.newTemp()
	out := addrOut(result)
	switch stem {
	case "add":
		fg.emit(asm.Add{A: l, B: r, Out: out})
	case "mul":
		fg.emit(asm.Mul{A: l, B: r, Out: out})
	case "lt":
		fg.emit(asm.LessThan{A: l, B: r, Out: out})
	case "eq":
		fg.emit(asm.Equals{A: l, B: r, Out: out})
	default:
		return asm.InParam{}, errors.Errorf("codegen: unknown binary op %q", stem)
	}
	return addrIn(result), nil
}

// genSub computes left-right. There is no native subtract instruction, so
// right is negated with a multiply by -1 first.
func (fg *funcGen) genSub(left, right source.Expr) (asm.InParam, error) {
	l, err := fg.genExpr(left)
	if err != nil {
		return asm.InParam{}, err
	}
	r, err := fg.genExpr(right)
	if err != nil {
		return asm.InParam{}, err
	}
	neg := fg.newTemp()
	fg.emit(asm.Mul{A: r, B: asm.InParam{Mode: asm.ModeImmediate, Value: asm.Lit(-1)}, Out: addrOut(neg)})
	result := fg.newTemp()
	fg.emit(asm.Add{A: l, B: addrIn(neg), Out: addrOut(result)})
	return addrIn(result), nil
}

// genAnd implements short-circuit "&&": result starts at 1; if left is
// false, jump straight to setting it to 0; otherwise evaluate right and
// jump to the end if it's true, falling through to the 0 case otherwise.
func (fg *funcGen) genAnd(left, right source.Expr) (asm.InParam, error) {
	result := fg.newTemp()
	fg.emit(asm.Add{A: litZero, B: litOne, Out: addrOut(result)})
	l, err := fg.genExpr(left)
	if err != nil {
		return asm.InParam{}, err
	}
	short := fg.ctx.mint("short")
	end := fg.ctx.mint("end")
	fg.emit(asm.JumpIfFalse{Condition: l, Target: immIn(short)})
	r, err := fg.genExpr(right)
	if err != nil {
		return asm.InParam{}, err
	}
	fg.emit(asm.JumpIfTrue{Condition: r, Target: immIn(end)})
	fg.emit(asm.Label{Name: short})
	fg.emit(asm.Add{A: litZero, B: litZero, Out: addrOut(result)})
	fg.emit(asm.Label{Name: end})
	return addrIn(result), nil
}

// genOr implements short-circuit "||", symmetric to genAnd: result starts
// at 0, and a true left operand jumps straight to setting it to 1.
func (fg *funcGen) genOr(left, right source.Expr) (asm.InParam, error) {
	result := fg.newTemp()
	fg.emit(asm.Add{A: litZero, B: litZero, Out: addrOut(result)})
	l, err := fg.genExpr(left)
	if err != nil {
		return asm.InParam{}, err
	}
	short := fg.ctx.mint("short")
	end := fg.ctx.mint("end")
	fg.emit(asm.JumpIfTrue{Condition: l, Target: immIn(short)})
	r, err := fg.genExpr(right)
	if err != nil {
		return asm.InParam{}, err
	}
	fg.emit(asm.JumpIfFalse{Condition: r, Target: immIn(end)})
	fg.emit(asm.Label{Name: short})
	fg.emit(asm.Add{A: litZero, B: litOne, Out: addrOut(result)})
	fg.emit(asm.Label{Name: end})
	return addrIn(result), nil
}

// genAddr evaluates addr and caches its value in a fresh local cell,
// returning an operand that yields the cached pointer whenever it's read.
func (fg *funcGen) genAddr(addr source.Expr) (asm.InParam, error) {
	v, err := fg.genExpr(addr)
	if err != nil {
		return asm.InParam{}, err
	}
	slot := fg.newTemp()
	fg.emit(asm.Add{A: litZero, B: v, Out: addrOut(slot)})
	return addrIn(slot), nil
}

// genIndirectRead reads the word at the runtime address held by ptr. The
// machine can only dereference an operand, not a value, so the generator
// self-modifies: a binding label is placed on the returned operand
// (initially an inert address-0 placeholder) and an instruction emitted
// now copies ptr's value into that exact cell, overwriting the
// placeholder before it is ever read.
func (fg *funcGen) genIndirectRead(ptr asm.InParam) asm.InParam {
	label := fg.ctx.mint("rptr")
	fg.emit(asm.Add{A: litZero, B: ptr, Out: addrOut(label)})
	return asm.InParam{Mode: asm.Address, Value: asm.Lit(0), Label: label}
}

// genIndirectWrite stores value at the runtime address held by ptr, using
// the same self-modifying technique as genIndirectRead but on the write
// side: the binding label is placed on the output operand instead.
func (fg *funcGen) genIndirectWrite(ptr, value asm.InParam) {
	label := fg.ctx.mint("wptr")
	fg.emit(asm.Add{A: litZero, B: ptr, Out: addrOut(label)})
	fg.emit(asm.Add{A: litZero, B: value, Out: asm.OutParam{Mode: asm.Address, Value: asm.Lit(0), Label: label}})
}

// genCall lowers a call expression using genCallWith after evaluating the
// callee expression.
func (fg *funcGen) genCall(call source.Call) (asm.InParam, error) {
	c, err := fg.genExpr(call.Func)
	if err != nil {
		return asm.InParam{}, err
	}
	return fg.genCallWith(c, call.Args)
}

// genCallWith implements the calling convention of spec §4.3.5: compute
// the callee's parameter-block address from its entry address, shift the
// relative base there to write arguments and the output/return slots
// positionally, restore the relative base, and indirect-jump in.
func (fg *funcGen) genCallWith(callee asm.InParam, argExprs []source.Expr) (asm.InParam, error) {
	n := len(argExprs)

	args := fg.newTemp()
	fg.emit(asm.Add{A: callee, B: asm.InParam{Mode: asm.ModeImmediate, Value: asm.Lit(int64(-(n + 2)))}, Out: addrOut(args)})
	fg.emit(asm.AdjustRelativeBase{Amount: addrIn(args)})

	for i, argExpr := range argExprs {
		av, err := fg.genExpr(argExpr)
		if err != nil {
			return asm.InParam{}, err
		}
		fg.emit(asm.Add{A: litZero, B: av, Out: asm.OutParam{Mode: asm.Relative, Value: asm.Lit(int64(i))}})
	}

	resultSlot := fg.newTemp()
	returnL := fg.ctx.mint("return")
	fg.emit(asm.Add{A: litZero, B: immIn(resultSlot), Out: asm.OutParam{Mode: asm.Relative, Value: asm.Lit(int64(n))}})
	fg.emit(asm.Add{A: litZero, B: immIn(returnL), Out: asm.OutParam{Mode: asm.Relative, Value: asm.Lit(int64(n + 1))}})

	negArgs := fg.newTemp()
	fg.emit(asm.Mul{A: addrIn(args), B: asm.InParam{Mode: asm.ModeImmediate, Value: asm.Lit(-1)}, Out: addrOut(negArgs)})
	fg.emit(asm.AdjustRelativeBase{Amount: addrIn(negArgs)})

	fg.emit(asm.JumpIfFalse{Condition: litZero, Target: callee})
	fg.emit(asm.Label{Name: returnL})

	return addrIn(resultSlot), nil
}
