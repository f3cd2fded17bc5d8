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
	"strconv"

	"github.com/mbrt/intscript/asm"
)

// Exports is what a module makes visible to the modules that import it:
// its own declared variables and constants (imports are not transitively
// re-exported).
type Exports struct {
	Variables map[string]bool
	Constants map[string]asm.Immediate
}

func newExports() Exports {
	return Exports{Variables: map[string]bool{}, Constants: map[string]asm.Immediate{}}
}

// Context is the mutable state shared by the whole compilation: the three
// output streams and the per-module export table. Labels are minted from
// a single counter per stem so that every generated name is unique across
// the whole program.
type Context struct {
	Text   []asm.Statement
	RoData []asm.Statement
	Data   []asm.Statement

	exports  map[string]Exports
	counters map[string]int
	strings  map[string]string // interned string value -> its rodata label
}

// NewContext returns an empty compilation context.
func NewContext() *Context {
	return &Context{
		exports:  map[string]Exports{},
		counters: map[string]int{},
		strings:  map[string]string{},
	}
}

// mint returns a fresh name built from stem and a per-stem counter, e.g.
// successive calls to mint("add") yield "add0", "add1", ...
func (c *Context) mint(stem string) string {
	n := c.counters[stem]
	c.counters[stem]++
	return stem + strconv.Itoa(n)
}

// internString returns the rodata label backing value, allocating and
// emitting a fresh one (and its .ascii directive) the first time value is
// seen.
func (c *Context) internString(value string) string {
	if label, ok := c.strings[value]; ok {
		return label
	}
	label := c.mint("string")
	c.strings[value] = label
	c.RoData = append(c.RoData, asm.Label{Name: label}, asm.Ascii{Value: value})
	return label
}

// Program returns the final flat assembly: generated code, then read-only
// data, then writable data, then the heapstart sentinel label.
func (c *Context) Program() []asm.Statement {
	out := make([]asm.Statement, 0, len(c.Text)+len(c.RoData)+len(c.Data)+1)
	out = append(out, c.Text...)
	out = append(out, c.RoData...)
	out = append(out, c.Data...)
	out = append(out, asm.Label{Name: "heapstart"})
	return out
}
