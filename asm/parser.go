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
	"strconv"
	"strings"
	"unicode"

	"github.com/mbrt/intscript/internal/diag"
)

// Parse parses the text assembly syntax into a slice of statements, one per
// source line. file is used only to annotate diagnostics.
func Parse(file, source string) ([]Statement, error) {
	p := &parser{file: file, src: source, line: 1, col: 1}
	return p.parseProgram()
}

type parser struct {
	file string
	src  string
	line int
	col  int
}

func (p *parser) pos() diag.Position {
	return diag.Position{File: p.file, Line: p.line, Col: p.col}
}

func (p *parser) die(format string, args ...interface{}) ([]Statement, error) {
	return nil, diag.Errorf(p.pos(), format, args...)
}

func (p *parser) dieHere(format string, args ...interface{}) error {
	return diag.Errorf(p.pos(), format, args...)
}

func (p *parser) advance(n int) {
	for _, c := range p.src[:n] {
		if c == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
	}
	p.src = p.src[n:]
}

func (p *parser) skipWhitespace() {
	for {
		i := 0
		for i < len(p.src) && p.src[i] == ' ' {
			i++
		}
		p.advance(i)
		if len(p.src) == 0 || p.src[0] != '#' {
			return
		}
		j := strings.IndexByte(p.src, '\n')
		if j < 0 {
			j = len(p.src)
		}
		p.advance(j)
	}
}

func (p *parser) eat(value string) error {
	p.skipWhitespace()
	if !strings.HasPrefix(p.src, value) {
		return p.dieHere("expected %q", value)
	}
	p.advance(len(value))
	return nil
}

func (p *parser) peek() (byte, error) {
	if len(p.src) == 0 {
		return 0, p.dieHere("unexpected end of input")
	}
	return p.src[0], nil
}

func (p *parser) get() (byte, error) {
	c, err := p.peek()
	if err != nil {
		return 0, err
	}
	p.advance(1)
	return c, nil
}

func isAlnum(c byte) bool {
	return unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func (p *parser) parseLiteral() (Lit, error) {
	p.skipWhitespace()
	i := 0
	if i < len(p.src) && p.src[i] == '-' {
		i++
	}
	start := i
	for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
		i++
	}
	if i == start {
		return 0, p.dieHere("expected numeric literal")
	}
	n, err := strconv.ParseInt(p.src[:i], 10, 64)
	if err != nil {
		return 0, p.dieHere("invalid numeric literal %q", p.src[:i])
	}
	p.advance(i)
	return Lit(n), nil
}

func (p *parser) parseName() (string, error) {
	p.skipWhitespace()
	i := 0
	for i < len(p.src) && isAlnum(p.src[i]) {
		i++
	}
	name := p.src[:i]
	if name == "" {
		return "", p.dieHere("expected name")
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "", p.dieHere("names cannot start with numbers")
	}
	p.advance(i)
	return name, nil
}

func (p *parser) parseImmediate() (Immediate, error) {
	p.skipWhitespace()
	c, err := p.peek()
	if err != nil {
		return nil, err
	}
	if unicode.IsLetter(rune(c)) {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return Ref(name), nil
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *parser) parseAddress() (Immediate, error) {
	if err := p.eat("*"); err != nil {
		return nil, err
	}
	return p.parseImmediate()
}

func (p *parser) parseRelative() (Immediate, error) {
	if err := p.eat("base["); err != nil {
		return nil, err
	}
	v, err := p.parseImmediate()
	if err != nil {
		return nil, err
	}
	if err := p.eat("]"); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *parser) parseInParam() (InParam, error) {
	p.skipWhitespace()
	c, err := p.peek()
	if err != nil {
		return InParam{}, err
	}
	var result InParam
	switch {
	case c == '*':
		v, err := p.parseAddress()
		if err != nil {
			return InParam{}, err
		}
		result = InParam{Mode: Address, Value: v}
	case strings.HasPrefix(p.src, "base["):
		v, err := p.parseRelative()
		if err != nil {
			return InParam{}, err
		}
		result = InParam{Mode: Relative, Value: v}
	default:
		v, err := p.parseImmediate()
		if err != nil {
			return InParam{}, err
		}
		result = InParam{Mode: ModeImmediate, Value: v}
	}
	p.skipWhitespace()
	if len(p.src) > 0 && p.src[0] == '@' {
		p.advance(1)
		label, err := p.parseName()
		if err != nil {
			return InParam{}, err
		}
		result.Label = label
	}
	return result, nil
}

func (p *parser) parseOutParam() (OutParam, error) {
	p.skipWhitespace()
	c, err := p.peek()
	if err != nil {
		return OutParam{}, err
	}
	var result OutParam
	switch {
	case c == '*':
		v, err := p.parseAddress()
		if err != nil {
			return OutParam{}, err
		}
		result = OutParam{Mode: Address, Value: v}
	case strings.HasPrefix(p.src, "base["):
		v, err := p.parseRelative()
		if err != nil {
			return OutParam{}, err
		}
		result = OutParam{Mode: Relative, Value: v}
	default:
		return OutParam{}, p.dieHere("expected *x or base[x]")
	}
	p.skipWhitespace()
	if len(p.src) > 0 && p.src[0] == '@' {
		p.advance(1)
		label, err := p.parseName()
		if err != nil {
			return OutParam{}, err
		}
		result.Label = label
	}
	return result, nil
}

func (p *parser) parseCalculation() (InParam, InParam, OutParam, error) {
	a, err := p.parseInParam()
	if err != nil {
		return InParam{}, InParam{}, OutParam{}, err
	}
	if err := p.eat(","); err != nil {
		return InParam{}, InParam{}, OutParam{}, err
	}
	b, err := p.parseInParam()
	if err != nil {
		return InParam{}, InParam{}, OutParam{}, err
	}
	if err := p.eat(","); err != nil {
		return InParam{}, InParam{}, OutParam{}, err
	}
	out, err := p.parseOutParam()
	if err != nil {
		return InParam{}, InParam{}, OutParam{}, err
	}
	return a, b, out, nil
}

func (p *parser) parseJump() (InParam, InParam, error) {
	cond, err := p.parseInParam()
	if err != nil {
		return InParam{}, InParam{}, err
	}
	if err := p.eat(","); err != nil {
		return InParam{}, InParam{}, err
	}
	target, err := p.parseInParam()
	if err != nil {
		return InParam{}, InParam{}, err
	}
	return cond, target, nil
}

func (p *parser) parseInstruction(mnemonic string) (Instruction, error) {
	switch mnemonic {
	case "add":
		a, b, out, err := p.parseCalculation()
		if err != nil {
			return nil, err
		}
		return Add{A: a, B: b, Out: out}, nil
	case "mul":
		a, b, out, err := p.parseCalculation()
		if err != nil {
			return nil, err
		}
		return Mul{A: a, B: b, Out: out}, nil
	case "lt":
		a, b, out, err := p.parseCalculation()
		if err != nil {
			return nil, err
		}
		return LessThan{A: a, B: b, Out: out}, nil
	case "eq":
		a, b, out, err := p.parseCalculation()
		if err != nil {
			return nil, err
		}
		return Equals{A: a, B: b, Out: out}, nil
	case "in":
		out, err := p.parseOutParam()
		if err != nil {
			return nil, err
		}
		return Input{Out: out}, nil
	case "out":
		x, err := p.parseInParam()
		if err != nil {
			return nil, err
		}
		return Output{X: x}, nil
	case "jnz":
		cond, target, err := p.parseJump()
		if err != nil {
			return nil, err
		}
		return JumpIfTrue{Condition: cond, Target: target}, nil
	case "jz":
		cond, target, err := p.parseJump()
		if err != nil {
			return nil, err
		}
		return JumpIfFalse{Condition: cond, Target: target}, nil
	case "arb":
		amount, err := p.parseInParam()
		if err != nil {
			return nil, err
		}
		return AdjustRelativeBase{Amount: amount}, nil
	case "halt":
		return Halt{}, nil
	default:
		return nil, p.dieHere("unknown op %q", mnemonic)
	}
}

func (p *parser) parseDirective() (Directive, error) {
	if err := p.eat("."); err != nil {
		return nil, err
	}
	id, err := p.parseName()
	if err != nil {
		return nil, err
	}
	switch id {
	case "define":
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		value, err := p.parseInParam()
		if err != nil {
			return nil, err
		}
		return Define{Name: name, Value: value}, nil
	case "int":
		value, err := p.parseImmediate()
		if err != nil {
			return nil, err
		}
		return Int{Value: value}, nil
	case "ascii":
		if err := p.eat("\""); err != nil {
			return nil, err
		}
		var sb strings.Builder
		for {
			c, err := p.peek()
			if err != nil {
				return nil, err
			}
			if c == '"' {
				break
			}
			if c == '\\' {
				p.advance(1)
				c, err := p.peek()
				if err != nil {
					return nil, err
				}
				switch c {
				case '\\', '"':
					b, _ := p.get()
					sb.WriteByte(b)
				case 'n':
					sb.WriteByte('\n')
					p.advance(1)
				default:
					return nil, p.dieHere("invalid escape sequence")
				}
				continue
			}
			b, _ := p.get()
			sb.WriteByte(b)
		}
		p.advance(1) // closing quote
		return Ascii{Value: sb.String()}, nil
	default:
		return nil, p.dieHere("invalid directive %q", id)
	}
}

func (p *parser) parseStatement() (Statement, error) {
	p.skipWhitespace()
	c, err := p.peek()
	if err != nil {
		return nil, err
	}
	if c == '.' {
		return p.parseDirective()
	}
	if isAlnum(c) {
		id, err := p.parseName()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if len(p.src) > 0 && p.src[0] == ':' {
			p.advance(1)
			return Label{Name: id}, nil
		}
		return p.parseInstruction(id)
	}
	return nil, p.dieHere("expected label or instruction")
}

func (p *parser) parseNewline() error {
	p.skipWhitespace()
	c, err := p.get()
	if err != nil {
		return err
	}
	if c != '\n' {
		return p.dieHere("expected newline")
	}
	return nil
}

func (p *parser) parseProgram() ([]Statement, error) {
	p.skipWhitespace()
	var out []Statement
	for len(p.src) > 0 {
		if p.src[0] != '\n' {
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		if err := p.parseNewline(); err != nil {
			return nil, err
		}
		p.skipWhitespace()
	}
	return out, nil
}
