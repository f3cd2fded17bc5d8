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

func (fg *funcGen) genBlock(stmts []source.Stmt) error {
	for _, s := range stmts {
		if err := fg.genStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (fg *funcGen) genStmt(s source.Stmt) error {
	switch v := s.(type) {
	case source.Constant:
		imm, err := evalConst(fg.ctx, fg, v.Value)
		if err != nil {
			return err
		}
		fg.declareLocalConst(v.Name, imm)
		return nil
	case source.DeclareScalar:
		fg.declareLocal(v.Name)
		return nil
	case source.DeclareArray:
		size, err := evalConst(fg.ctx, fg, v.Size)
		if err != nil {
			return err
		}
		n, ok := size.(asm.Lit)
		if !ok {
			return errors.New("array size must be an integer constant")
		}
		first := fg.newTemp()
		for i := int64(1); i < int64(n); i++ {
			fg.newTemp()
		}
		fg.declareLocalConst(v.Name, asm.Ref(first))
		return nil
	case source.Assign:
		return fg.genAssign(v.Left, v.Right)
	case source.AddAssign:
		return fg.genAddAssign(v.Left, v.Right)
	case source.If:
		return fg.genIf(v)
	case source.While:
		return fg.genWhile(v)
	case source.Output:
		val, err := fg.genExpr(v.Value)
		if err != nil {
			return err
		}
		fg.emit(asm.Output{X: val})
		return nil
	case source.Return:
		return fg.genReturn(v.Value)
	case source.Break:
		target, ok := fg.breakTarget()
		if !ok {
			return errors.New("break outside a loop")
		}
		fg.emit(asm.JumpIfFalse{Condition: litZero, Target: immIn(target)})
		return nil
	case source.Continue:
		target, ok := fg.continueTarget()
		if !ok {
			return errors.New("continue outside a loop")
		}
		fg.emit(asm.JumpIfFalse{Condition: litZero, Target: immIn(target)})
		return nil
	case source.Halt:
		fg.emit(asm.Halt{})
		return nil
	case source.Call:
		_, err := fg.genCall(v)
		return err
	default:
		return errors.Errorf("codegen: unsupported statement %T", s)
	}
}

func (fg *funcGen) genAssign(left, right source.Expr) error {
	v, err := fg.genExpr(right)
	if err != nil {
		return err
	}
	switch l := left.(type) {
	case source.Name:
		out, err := fg.resolveOut(l.Value)
		if err != nil {
			return err
		}
		fg.emit(asm.Add{A: litZero, B: v, Out: out})
		return nil
	case source.Read:
		ptr, err := fg.genAddr(l.Address)
		if err != nil {
			return err
		}
		fg.genIndirectWrite(ptr, v)
		return nil
	default:
		return errors.Errorf("codegen: %T is not an lvalue", left)
	}
}

func (fg *funcGen) genAddAssign(left, right source.Expr) error {
	v, err := fg.genExpr(right)
	if err != nil {
		return err
	}
	switch l := left.(type) {
	case source.Name:
		out, err := fg.resolveOut(l.Value)
		if err != nil {
			return err
		}
		in, err := fg.resolveIn(l.Value)
		if err != nil {
			return err
		}
		fg.emit(asm.Add{A: in, B: v, Out: out})
		return nil
	case source.Read:
		ptr, err := fg.genAddr(l.Address)
		if err != nil {
			return err
		}
		cur := fg.genIndirectRead(ptr)
		sum := fg.newTemp()
		fg.emit(asm.Add{A: cur, B: v, Out: addrOut(sum)})
		fg.genIndirectWrite(ptr, addrIn(sum))
		return nil
	default:
		return errors.Errorf("codegen: %T is not an lvalue", left)
	}
}

func (fg *funcGen) genIf(s source.If) error {
	cond, err := fg.genExpr(s.Condition)
	if err != nil {
		return err
	}
	elseLabel := fg.ctx.mint("else")
	endLabel := fg.ctx.mint("endif")
	target := elseLabel
	if len(s.Else) == 0 {
		target = endLabel
	}
	fg.emit(asm.JumpIfFalse{Condition: cond, Target: immIn(target)})

	fg.pushScope("", "")
	if err := fg.genBlock(s.Then); err != nil {
		return err
	}
	fg.popScope()

	if len(s.Else) > 0 {
		fg.emit(asm.JumpIfFalse{Condition: litZero, Target: immIn(endLabel)})
		fg.emit(asm.Label{Name: elseLabel})
		fg.pushScope("", "")
		if err := fg.genBlock(s.Else); err != nil {
			return err
		}
		fg.popScope()
	}
	fg.emit(asm.Label{Name: endLabel})
	return nil
}

func (fg *funcGen) genWhile(s source.While) error {
	start := fg.ctx.mint("whilestart")
	condLabel := fg.ctx.mint("whilecond")
	end := fg.ctx.mint("whileend")

	fg.emit(asm.JumpIfFalse{Condition: litZero, Target: immIn(condLabel)})
	fg.emit(asm.Label{Name: start})

	fg.pushScope(end, condLabel)
	if err := fg.genBlock(s.Body); err != nil {
		return err
	}
	fg.popScope()

	fg.emit(asm.Label{Name: condLabel})
	cond, err := fg.genExpr(s.Condition)
	if err != nil {
		return err
	}
	fg.emit(asm.JumpIfTrue{Condition: cond, Target: immIn(start)})
	fg.emit(asm.Label{Name: end})
	return nil
}

func (fg *funcGen) genReturn(value source.Expr) error {
	v, err := fg.genExpr(value)
	if err != nil {
		return err
	}
	ptr := addrIn(outputLabel(fg.name))
	fg.genIndirectWrite(ptr, v)
	fg.emit(asm.JumpIfFalse{Condition: litZero, Target: addrIn(returnLabel(fg.name))})
	return nil
}
