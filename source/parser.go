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

package source

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/mbrt/intscript/internal/diag"
)

const symbolChars = "+-=<>!.&|"

// Parse parses one module from source. file is recorded as the module's
// Path and used to annotate diagnostics.
func Parse(file, src string) (*Module, error) {
	p := &parser{file: file, src: src, line: 1, col: 1}
	return p.parseModule()
}

type parser struct {
	file string
	src  string
	line int
	col  int
}

func (p *parser) pos() diag.Position { return diag.Position{File: p.file, Line: p.line, Col: p.col} }

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

func (p *parser) peekName() string {
	p.skipWhitespace()
	i := 0
	for i < len(p.src) && isAlnum(p.src[i]) {
		i++
	}
	return p.src[:i]
}

func isAlnum(c byte) bool { return unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) }

func (p *parser) consumeName(value string) bool {
	if p.peekName() == value {
		p.advance(len(value))
		return true
	}
	return false
}

func (p *parser) eatName(value string) error {
	if !p.consumeName(value) {
		return p.dieHere("expected %q", value)
	}
	return nil
}

func (p *parser) peekSymbol() string {
	p.skipWhitespace()
	i := 0
	for i < len(p.src) && strings.IndexByte(symbolChars, p.src[i]) >= 0 {
		i++
	}
	return p.src[:i]
}

func (p *parser) consumeSymbol(value string) bool {
	if p.peekSymbol() == value {
		p.advance(len(value))
		return true
	}
	return false
}

func (p *parser) eatSymbol(value string) error {
	if !p.consumeSymbol(value) {
		return p.dieHere("expected %q", value)
	}
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

func (p *parser) parseInteger() (int64, error) {
	i := 0
	for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, p.dieHere("expected numeric literal")
	}
	n, err := strconv.ParseInt(p.src[:i], 10, 64)
	if err != nil {
		return 0, p.dieHere("invalid numeric literal %q", p.src[:i])
	}
	p.advance(i)
	return n, nil
}

func (p *parser) parseStringLiteral() (string, error) {
	if err := p.eat("\""); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		c, err := p.peek()
		if err != nil {
			return "", err
		}
		if c == '"' {
			break
		}
		if c == '\\' {
			p.advance(1)
			c, err := p.peek()
			if err != nil {
				return "", err
			}
			switch c {
			case '\\', '"':
				b, _ := p.get()
				sb.WriteByte(b)
			case 'n':
				sb.WriteByte('\n')
				p.advance(1)
			default:
				return "", p.dieHere("invalid escape sequence")
			}
			continue
		}
		b, _ := p.get()
		sb.WriteByte(b)
	}
	p.advance(1) // closing quote
	return sb.String(), nil
}

func (p *parser) parseName() (string, error) {
	name := p.peekName()
	if name == "" {
		return "", p.dieHere("expected name")
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "", p.dieHere("names cannot start with numbers")
	}
	p.advance(len(name))
	return name, nil
}

func (p *parser) parseTerm() (Expr, error) {
	p.skipWhitespace()
	c, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case c == '"':
		s, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		return StrLit{Value: s}, nil
	case c >= '0' && c <= '9':
		n, err := p.parseInteger()
		if err != nil {
			return nil, err
		}
		return IntLit{Value: n}, nil
	case c == '(':
		p.advance(1)
		e, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if err := p.eat(")"); err != nil {
			return nil, err
		}
		return e, nil
	default:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if name == "input" {
			return Input{}, nil
		}
		return Name{Value: name}, nil
	}
}

func (p *parser) parseSuffix() (Expr, error) {
	result, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWhitespace()
		if len(p.src) == 0 {
			break
		}
		switch p.src[0] {
		case '[':
			p.advance(1)
			addr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.eat("]"); err != nil {
				return nil, err
			}
			result = Read{Address: Add{Left: result, Right: addr}}
		case '(':
			p.advance(1)
			p.skipWhitespace()
			var args []Expr
			c, err := p.peek()
			if err != nil {
				return nil, err
			}
			if c != ')' {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				p.skipWhitespace()
				for {
					c, err := p.peek()
					if err != nil {
						return nil, err
					}
					if c == ')' {
						break
					}
					if err := p.eat(","); err != nil {
						return nil, err
					}
					arg, err := p.parseExpression()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					p.skipWhitespace()
				}
			}
			if err := p.eat(")"); err != nil {
				return nil, err
			}
			result = Call{Func: result, Args: args}
		default:
			return result, nil
		}
	}
	return result, nil
}

func (p *parser) parsePrefix() (Expr, error) {
	p.skipWhitespace()
	c, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch c {
	case '*':
		p.advance(1)
		addr, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return Read{Address: addr}, nil
	case '-':
		p.advance(1)
		x, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return Negate(x), nil
	default:
		return p.parseSuffix()
	}
}

func (p *parser) parseProduct() (Expr, error) {
	result, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWhitespace()
		if len(p.src) == 0 || p.src[0] != '*' {
			return result, nil
		}
		p.advance(1)
		rhs, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		result = Mul{Left: result, Right: rhs}
	}
}

func (p *parser) parseSum() (Expr, error) {
	result, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWhitespace()
		if len(p.src) == 0 {
			return result, nil
		}
		switch p.src[0] {
		case '+':
			p.advance(1)
			rhs, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			result = Add{Left: result, Right: rhs}
		case '-':
			p.advance(1)
			rhs, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			result = Sub{Left: result, Right: rhs}
		default:
			return result, nil
		}
	}
}

func (p *parser) parseExpression() (Expr, error) { return p.parseDisjunction() }

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	switch {
	case p.consumeSymbol("<"):
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return LessThan{Left: left, Right: right}, nil
	case p.consumeSymbol("=="):
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return Equals{Left: left, Right: right}, nil
	case p.consumeSymbol(">"):
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return GreaterThan(left, right), nil
	case p.consumeSymbol("<="):
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return LessOrEqual(left, right), nil
	case p.consumeSymbol(">="):
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return GreaterOrEqual(left, right), nil
	case p.consumeSymbol("!="):
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return NotEquals(left, right), nil
	default:
		return left, nil
	}
}

func (p *parser) parseConjunction() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.consumeSymbol("&&") {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = LogicalAnd{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseDisjunction() (Expr, error) {
	left, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for p.consumeSymbol("||") {
		right, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		left = LogicalOr{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseCondition() (Expr, error) { return p.parseDisjunction() }

// parseVarDecls parses one "var" declaration list, shared by module-level
// declarations (declare-only) and statement-level ones (may include an
// initializing assignment).
func (p *parser) parseVarDecls(allowAssign bool) ([]Stmt, error) {
	if err := p.eatName("var"); err != nil {
		return nil, err
	}
	var out []Stmt
	for {
		id, err := p.parseName()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		c, err := p.peek()
		if err != nil {
			return nil, err
		}
		if c == '[' {
			p.advance(1)
			size, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.eat("]"); err != nil {
				return nil, err
			}
			out = append(out, DeclareArray{Name: id, Size: size})
		} else {
			out = append(out, DeclareScalar{Name: id})
		}
		if allowAssign {
			p.skipWhitespace()
			if len(p.src) > 0 && p.src[0] == '=' {
				p.advance(1)
				value, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				out = append(out, Assign{Left: Name{Value: id}, Right: value})
				p.skipWhitespace()
			}
		}
		if len(p.src) == 0 || p.src[0] != ',' {
			break
		}
		p.advance(1)
	}
	if err := p.eat(";"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseConstants() ([]Stmt, error) {
	if err := p.eatName("const"); err != nil {
		return nil, err
	}
	var out []Stmt
	for {
		id, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if err := p.eat("="); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		out = append(out, Constant{Name: id, Value: value})
		p.skipWhitespace()
		if len(p.src) == 0 || p.src[0] != ',' {
			break
		}
		p.advance(1)
	}
	if err := p.eat(";"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseIfStatement() (Stmt, error) {
	if err := p.eatName("if"); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err := p.eat("{"); err != nil {
		return nil, err
	}
	if err := p.parseNewline(); err != nil {
		return nil, err
	}
	then, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if err := p.eat("}"); err != nil {
		return nil, err
	}
	p.skipWhitespace()
	var elseBranch []Stmt
	if p.consumeName("else") {
		if p.peekName() == "if" {
			s, err := p.parseIfStatement()
			if err != nil {
				return nil, err
			}
			elseBranch = []Stmt{s}
		} else {
			if err := p.eat("{"); err != nil {
				return nil, err
			}
			if err := p.parseNewline(); err != nil {
				return nil, err
			}
			elseBranch, err = p.parseStatements()
			if err != nil {
				return nil, err
			}
			if err := p.eat("}"); err != nil {
				return nil, err
			}
		}
	}
	return If{Condition: cond, Then: then, Else: elseBranch}, nil
}

func (p *parser) parseWhileStatement() (Stmt, error) {
	if err := p.eatName("while"); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err := p.eat("{"); err != nil {
		return nil, err
	}
	if err := p.parseNewline(); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if err := p.eat("}"); err != nil {
		return nil, err
	}
	return While{Condition: cond, Body: body}, nil
}

func (p *parser) parseStatements() ([]Stmt, error) {
	p.skipWhitespace()
	var out []Stmt
	for len(p.src) > 0 && p.src[0] != '}' {
		if err := p.parseLine(&out); err != nil {
			return nil, err
		}
		if err := p.eat("\n"); err != nil {
			return nil, err
		}
		p.skipWhitespace()
	}
	return out, nil
}

func (p *parser) parseLine(out *[]Stmt) error {
	c, err := p.peek()
	if err != nil {
		return err
	}
	if unicode.IsLetter(rune(c)) {
		switch p.peekName() {
		case "const":
			decls, err := p.parseConstants()
			if err != nil {
				return err
			}
			*out = append(*out, decls...)
			return nil
		case "var":
			decls, err := p.parseVarDecls(true)
			if err != nil {
				return err
			}
			*out = append(*out, decls...)
			return nil
		case "if":
			s, err := p.parseIfStatement()
			if err != nil {
				return err
			}
			*out = append(*out, s)
			return nil
		case "while":
			s, err := p.parseWhileStatement()
			if err != nil {
				return err
			}
			*out = append(*out, s)
			return nil
		case "output":
			p.advance(len("output"))
			value, err := p.parseExpression()
			if err != nil {
				return err
			}
			if err := p.eat(";"); err != nil {
				return err
			}
			*out = append(*out, Output{Value: value})
			return nil
		case "return":
			p.advance(len("return"))
			value, err := p.parseExpression()
			if err != nil {
				return err
			}
			if err := p.eat(";"); err != nil {
				return err
			}
			*out = append(*out, Return{Value: value})
			return nil
		case "break":
			p.advance(len("break"))
			if err := p.eat(";"); err != nil {
				return err
			}
			*out = append(*out, Break{})
			return nil
		case "continue":
			p.advance(len("continue"))
			if err := p.eat(";"); err != nil {
				return err
			}
			*out = append(*out, Continue{})
			return nil
		case "halt":
			p.advance(len("halt"))
			if err := p.eat(";"); err != nil {
				return err
			}
			*out = append(*out, Halt{})
			return nil
		}
	}
	expr, err := p.parseExpression()
	if err != nil {
		return err
	}
	p.skipWhitespace()
	if len(p.src) > 0 && p.src[0] == '=' {
		if !IsLvalue(expr) {
			return p.dieHere("not an lvalue")
		}
		p.advance(1)
		value, err := p.parseExpression()
		if err != nil {
			return err
		}
		if err := p.eat(";"); err != nil {
			return err
		}
		*out = append(*out, Assign{Left: expr, Right: value})
		return nil
	}
	if len(p.src) > 1 && p.src[0] == '+' && p.src[1] == '=' {
		if !IsLvalue(expr) {
			return p.dieHere("not an lvalue")
		}
		p.advance(2)
		value, err := p.parseExpression()
		if err != nil {
			return err
		}
		if err := p.eat(";"); err != nil {
			return err
		}
		*out = append(*out, AddAssign{Left: expr, Right: value})
		return nil
	}
	call, ok := expr.(Call)
	if !ok {
		return p.dieHere("only call expressions can be performed as statements")
	}
	if err := p.eat(";"); err != nil {
		return err
	}
	*out = append(*out, call)
	return nil
}

func (p *parser) parseFunctionDefinition() (FunctionDef, error) {
	if err := p.eatName("function"); err != nil {
		return FunctionDef{}, err
	}
	name, err := p.parseName()
	if err != nil {
		return FunctionDef{}, err
	}
	if err := p.eat("("); err != nil {
		return FunctionDef{}, err
	}
	var params []string
	for {
		p.skipWhitespace()
		c, err := p.peek()
		if err != nil {
			return FunctionDef{}, err
		}
		if c == ')' {
			break
		}
		param, err := p.parseName()
		if err != nil {
			return FunctionDef{}, err
		}
		params = append(params, param)
		p.skipWhitespace()
		if len(p.src) == 0 || p.src[0] != ',' {
			break
		}
		p.advance(1)
	}
	if err := p.eat(")"); err != nil {
		return FunctionDef{}, err
	}
	if err := p.eat("{"); err != nil {
		return FunctionDef{}, err
	}
	if err := p.parseNewline(); err != nil {
		return FunctionDef{}, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return FunctionDef{}, err
	}
	if err := p.eat("}"); err != nil {
		return FunctionDef{}, err
	}
	return FunctionDef{Name: name, Parameters: params, Body: body}, nil
}

func (p *parser) parseImport() (Import, error) {
	if err := p.eatName("import"); err != nil {
		return Import{}, err
	}
	first, err := p.parseName()
	if err != nil {
		return Import{}, err
	}
	parts := []string{first}
	for p.peekSymbol() == "." {
		if err := p.eatSymbol("."); err != nil {
			return Import{}, err
		}
		part, err := p.parseName()
		if err != nil {
			return Import{}, err
		}
		parts = append(parts, part)
	}
	if err := p.eat(";"); err != nil {
		return Import{}, err
	}
	return Import{Parts: parts}, nil
}

func (p *parser) parseModule() (*Module, error) {
	m := &Module{Path: p.file}
	for p.peekName() == "import" {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		m.Imports = append(m.Imports, imp)
		if err := p.parseNewline(); err != nil {
			return nil, err
		}
	}
	for {
		p.skipWhitespace()
		if len(p.src) == 0 {
			break
		}
		if p.src[0] == '\n' {
			if err := p.parseNewline(); err != nil {
				return nil, err
			}
			continue
		}
		switch p.peekName() {
		case "const":
			decls, err := p.parseConstants()
			if err != nil {
				return nil, err
			}
			for _, s := range decls {
				m.Body = append(m.Body, s.(Decl))
			}
		case "var":
			decls, err := p.parseVarDecls(false)
			if err != nil {
				return nil, err
			}
			for _, s := range decls {
				m.Body = append(m.Body, s.(Decl))
			}
		case "function":
			fn, err := p.parseFunctionDefinition()
			if err != nil {
				return nil, err
			}
			m.Body = append(m.Body, fn)
		default:
			return nil, p.dieHere("expected declaration")
		}
		if err := p.parseNewline(); err != nil {
			return nil, err
		}
	}
	return m, nil
}
