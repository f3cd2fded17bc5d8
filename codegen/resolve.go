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
)

// resolveIn looks up name for use as a value, in precedence order: local
// scopes innermost-first, then function parameters, then the module's own
// globals, then its imports.
func (fg *funcGen) resolveIn(name string) (asm.InParam, error) {
	for i := len(fg.scopes) - 1; i >= 0; i-- {
		s := fg.scopes[i]
		if slot, ok := s.locals[name]; ok {
			return asm.InParam{Mode: asm.Address, Value: asm.Ref(localLabel(fg.name, slot))}, nil
		}
		if v, ok := s.consts[name]; ok {
			return asm.InParam{Mode: asm.ModeImmediate, Value: v}, nil
		}
	}
	for _, p := range fg.params {
		if p == name {
			return asm.InParam{Mode: asm.Address, Value: asm.Ref(argLabel(fg.name, indexOf(fg.params, name)+1))}, nil
		}
	}
	if fg.mc != nil {
		if fg.mc.ownVars[name] {
			return asm.InParam{Mode: asm.Address, Value: asm.Ref(globalLabel(name))}, nil
		}
		if v, ok := fg.mc.ownConsts[name]; ok {
			return asm.InParam{Mode: asm.ModeImmediate, Value: v}, nil
		}
		if fg.mc.importedVars[name] {
			return asm.InParam{Mode: asm.Address, Value: asm.Ref(globalLabel(name))}, nil
		}
		if v, ok := fg.mc.importedConsts[name]; ok {
			return asm.InParam{Mode: asm.ModeImmediate, Value: v}, nil
		}
	}
	return asm.InParam{}, errors.Errorf("undefined name %q", name)
}

// resolveOut looks up name for use as an assignment target. Constants
// (including array names, which are always constants) cannot be assigned.
func (fg *funcGen) resolveOut(name string) (asm.OutParam, error) {
	for i := len(fg.scopes) - 1; i >= 0; i-- {
		s := fg.scopes[i]
		if slot, ok := s.locals[name]; ok {
			return asm.OutParam{Mode: asm.Address, Value: asm.Ref(localLabel(fg.name, slot))}, nil
		}
		if _, ok := s.consts[name]; ok {
			return asm.OutParam{}, errors.Errorf("cannot assign to constant %q", name)
		}
	}
	for _, p := range fg.params {
		if p == name {
			return asm.OutParam{Mode: asm.Address, Value: asm.Ref(argLabel(fg.name, indexOf(fg.params, name)+1))}, nil
		}
	}
	if fg.mc != nil {
		if fg.mc.ownVars[name] || fg.mc.importedVars[name] {
			return asm.OutParam{Mode: asm.Address, Value: asm.Ref(globalLabel(name))}, nil
		}
		if _, ok := fg.mc.ownConsts[name]; ok {
			return asm.OutParam{}, errors.Errorf("cannot assign to constant %q", name)
		}
		if _, ok := fg.mc.importedConsts[name]; ok {
			return asm.OutParam{}, errors.Errorf("cannot assign to constant %q", name)
		}
	}
	return asm.OutParam{}, errors.Errorf("undefined name %q", name)
}

func indexOf(xs []string, v string) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}
