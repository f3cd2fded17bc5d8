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
	"fmt"
	"strconv"
	"strings"
)

func (l Lit) String() string { return strconv.FormatInt(int64(l), 10) }
func (r Ref) String() string { return string(r) }

func formatImmediate(v Immediate) string {
	switch x := v.(type) {
	case Lit:
		return x.String()
	case Ref:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func formatInOperand(mode Mode, value Immediate) string {
	switch mode {
	case Address:
		return "*" + formatImmediate(value)
	case Relative:
		return "base[" + formatImmediate(value) + "]"
	default: // Immediate
		return formatImmediate(value)
	}
}

func formatOutOperand(mode Mode, value Immediate) string {
	switch mode {
	case Relative:
		return "base[" + formatImmediate(value) + "]"
	default: // Address
		return "*" + formatImmediate(value)
	}
}

func (p InParam) String() string {
	s := formatInOperand(p.Mode, p.Value)
	if p.Label != "" {
		s += " @ " + p.Label
	}
	return s
}

func (p OutParam) String() string {
	s := formatOutOperand(p.Mode, p.Value)
	if p.Label != "" {
		s += " @ " + p.Label
	}
	return s
}

func calc(a, b InParam, out OutParam) string {
	return a.String() + ", " + b.String() + ", " + out.String()
}

func (i Literal) String() string            { return strconv.FormatInt(int64(i.Value), 10) }
func (i Add) String() string                { return "add " + calc(i.A, i.B, i.Out) }
func (i Mul) String() string                { return "mul " + calc(i.A, i.B, i.Out) }
func (i LessThan) String() string           { return "lt " + calc(i.A, i.B, i.Out) }
func (i Equals) String() string             { return "eq " + calc(i.A, i.B, i.Out) }
func (i Input) String() string              { return "in " + i.Out.String() }
func (i Output) String() string             { return "out " + i.X.String() }
func (i JumpIfTrue) String() string         { return "jnz " + i.Condition.String() + ", " + i.Target.String() }
func (i JumpIfFalse) String() string        { return "jz " + i.Condition.String() + ", " + i.Target.String() }
func (i AdjustRelativeBase) String() string { return "arb " + i.Amount.String() }
func (i Halt) String() string               { return "halt" }

func (d Define) String() string { return ".define " + d.Name + " " + d.Value.String() }
func (d Int) String() string    { return ".int " + formatImmediate(d.Value) }
func (d Ascii) String() string  { return ".ascii " + strconv.Quote(d.Value) }

func (l Label) String() string { return l.Name + ":" }

// FormatStatement renders one statement the way the text assembly syntax
// expects it: a label prints bare, anything else is indented by two
// spaces.
func FormatStatement(s Statement) string {
	if l, ok := s.(Label); ok {
		return l.String()
	}
	if str, ok := s.(fmt.Stringer); ok {
		return "  " + str.String()
	}
	return "  <unknown statement>"
}

// Format renders a full program as assembly text, one statement per line.
func Format(statements []Statement) string {
	var sb strings.Builder
	for _, s := range statements {
		sb.WriteString(FormatStatement(s))
		sb.WriteByte('\n')
	}
	return sb.String()
}
