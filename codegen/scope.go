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

import "github.com/mbrt/intscript/asm"

// scope is one lexical block: a function body, an if-branch, or a while
// body. Sibling scopes share slot space by starting from the same base;
// the function-wide watermark records the deepest footprint reached.
type scope struct {
	base int // cumulative slot count of enclosing scopes
	next int // slots allocated so far within this scope

	locals map[string]int          // name -> absolute slot index
	consts map[string]asm.Immediate // name -> compile-time value

	breakLabel    string
	continueLabel string
}

func newScope(base int) *scope {
	return &scope{base: base, locals: map[string]int{}, consts: map[string]asm.Immediate{}}
}

// funcGen holds all per-function generation state: the module it belongs
// to, its mangled name (used verbatim as the "F" of every label in the
// calling convention), its scope stack, and the instructions emitted so
// far.
type funcGen struct {
	ctx    *Context
	mc     *moduleContext // nil for the synthetic _start function
	name   string
	params []string

	scopes  []*scope
	maxSize int

	body []asm.Statement
}

func newFuncGen(ctx *Context, mc *moduleContext, name string, params []string) *funcGen {
	return &funcGen{
		ctx:    ctx,
		mc:     mc,
		name:   name,
		params: params,
		scopes: []*scope{newScope(0)},
	}
}

func (fg *funcGen) emit(s asm.Statement) { fg.body = append(fg.body, s) }

func (fg *funcGen) top() *scope { return fg.scopes[len(fg.scopes)-1] }

func (fg *funcGen) pushScope(breakLabel, continueLabel string) {
	t := fg.top()
	s := newScope(t.base + t.next)
	if breakLabel != "" {
		s.breakLabel = breakLabel
		s.continueLabel = continueLabel
	} else {
		s.breakLabel = t.breakLabel
		s.continueLabel = t.continueLabel
	}
	fg.scopes = append(fg.scopes, s)
}

func (fg *funcGen) popScope() {
	fg.scopes = fg.scopes[:len(fg.scopes)-1]
}

// allocSlot reserves the next free local slot in the current scope,
// advancing the function's watermark if this is the deepest point
// reached so far.
func (fg *funcGen) allocSlot() int {
	s := fg.top()
	idx := s.base + s.next
	s.next++
	if s.base+s.next > fg.maxSize {
		fg.maxSize = s.base + s.next
	}
	return idx
}

// newTemp allocates a fresh, unnamed local slot for compiler-generated
// scratch storage and returns its label.
func (fg *funcGen) newTemp() string { return localLabel(fg.name, fg.allocSlot()) }

// declareLocal binds name to a fresh slot in the current scope.
func (fg *funcGen) declareLocal(name string) string {
	slot := fg.allocSlot()
	fg.top().locals[name] = slot
	return localLabel(fg.name, slot)
}

// declareLocalConst binds name to a compile-time value in the current
// scope, used for both "const" statements and array declarations (whose
// value is the address of their first cell).
func (fg *funcGen) declareLocalConst(name string, value asm.Immediate) {
	fg.top().consts[name] = value
}

func (fg *funcGen) breakTarget() (string, bool) {
	for i := len(fg.scopes) - 1; i >= 0; i-- {
		if fg.scopes[i].breakLabel != "" {
			return fg.scopes[i].breakLabel, true
		}
	}
	return "", false
}

func (fg *funcGen) continueTarget() (string, bool) {
	for i := len(fg.scopes) - 1; i >= 0; i-- {
		if fg.scopes[i].continueLabel != "" {
			return fg.scopes[i].continueLabel, true
		}
	}
	return "", false
}
