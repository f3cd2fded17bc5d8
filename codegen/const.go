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

// constEnv resolves a name to a compile-time constant, without caring
// whether the lookup crosses module or function scope.
type constEnv interface {
	lookupConst(name string) (asm.Immediate, bool)
}

func (mc *moduleContext) lookupConst(name string) (asm.Immediate, bool) {
	if v, ok := mc.ownConsts[name]; ok {
		return v, true
	}
	if v, ok := mc.importedConsts[name]; ok {
		return v, true
	}
	return nil, false
}

func (fg *funcGen) lookupConst(name string) (asm.Immediate, bool) {
	for i := len(fg.scopes) - 1; i >= 0; i-- {
		if v, ok := fg.scopes[i].consts[name]; ok {
			return v, true
		}
	}
	if fg.mc != nil {
		return fg.mc.lookupConst(name)
	}
	return nil, false
}

// evalConst folds e into a compile-time asm.Immediate. Only integer and
// string literals, name references to other constants, and +/-/*
// combinations of two integer constants are supported: array sizes and
// "const" declarations never need more than that.
func evalConst(ctx *Context, env constEnv, e source.Expr) (asm.Immediate, error) {
	switch v := e.(type) {
	case source.IntLit:
		return asm.Lit(v.Value), nil
	case source.StrLit:
		return asm.Ref(ctx.internString(v.Value)), nil
	case source.Name:
		if imm, ok := env.lookupConst(v.Value); ok {
			return imm, nil
		}
		return nil, errors.Errorf("%q is not a compile-time constant", v.Value)
	case source.Add:
		return foldArith(ctx, env, v.Left, v.Right, func(a, b int64) int64 { return a + b })
	case source.Sub:
		return foldArith(ctx, env, v.Left, v.Right, func(a, b int64) int64 { return a - b })
	case source.Mul:
		return foldArith(ctx, env, v.Left, v.Right, func(a, b int64) int64 { return a * b })
	default:
		return nil, errors.Errorf("not a compile-time constant expression: %T", e)
	}
}

func foldArith(ctx *Context, env constEnv, left, right source.Expr, op func(a, b int64) int64) (asm.Immediate, error) {
	l, err := evalConst(ctx, env, left)
	if err != nil {
		return nil, err
	}
	r, err := evalConst(ctx, env, right)
	if err != nil {
		return nil, err
	}
	lLit, lok := l.(asm.Lit)
	rLit, rok := r.(asm.Lit)
	if !lok || !rok {
		return nil, errors.New("compile-time arithmetic requires both operands to be integer constants")
	}
	return asm.Lit(op(int64(lLit), int64(rLit))), nil
}
