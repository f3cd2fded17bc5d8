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

import "path/filepath"

// Expr is any expression node.
type Expr interface{ isExpr() }

// IntLit is an integer literal.
type IntLit struct{ Value int64 }

func (IntLit) isExpr() {}

// StrLit is a string literal; the code generator interns it into rodata
// and replaces it with the address of its first byte.
type StrLit struct{ Value string }

func (StrLit) isExpr() {}

// Name is a bare identifier reference: a local variable, a parameter, a
// module-level variable or constant, or a function.
type Name struct{ Value string }

func (Name) isExpr() {}

// Call applies Func to Args. It is also a Stmt: a bare call expression is
// the only kind of expression statement the language allows.
type Call struct {
	Func Expr
	Args []Expr
}

func (Call) isExpr() {}
func (Call) isStmt() {}

// Add, Sub, Mul, LessThan, Equals, LogicalAnd, and LogicalOr all share the
// same left/right shape.
type Add struct{ Left, Right Expr }
type Sub struct{ Left, Right Expr }
type Mul struct{ Left, Right Expr }
type LessThan struct{ Left, Right Expr }
type Equals struct{ Left, Right Expr }
type LogicalAnd struct{ Left, Right Expr }
type LogicalOr struct{ Left, Right Expr }

func (Add) isExpr()        {}
func (Sub) isExpr()        {}
func (Mul) isExpr()        {}
func (LessThan) isExpr()   {}
func (Equals) isExpr()     {}
func (LogicalAnd) isExpr() {}
func (LogicalOr) isExpr()  {}

// Input reads one word from the machine's suspend-on-input channel.
type Input struct{}

func (Input) isExpr() {}

// Read dereferences Address as an lvalue: *address.
type Read struct{ Address Expr }

func (Read) isExpr() {}

// Negate builds -(x) as 0 - x, the same desugaring the parser applies to a
// leading unary minus.
func Negate(x Expr) Expr { return Sub{Left: IntLit{0}, Right: x} }

// LogicalNot builds !(x) as (x == 0).
func LogicalNot(x Expr) Expr { return Equals{Left: x, Right: IntLit{0}} }

// GreaterThan builds (l > r) as (r < l): an operand swap, not a negation.
func GreaterThan(l, r Expr) Expr { return LessThan{Left: r, Right: l} }

// LessOrEqual builds (l <= r) as !(l > r).
func LessOrEqual(l, r Expr) Expr { return LogicalNot(GreaterThan(l, r)) }

// GreaterOrEqual builds (l >= r) as !(l < r), not as an operand-swapped
// less-than: the tie-break for "a >= b" is "not (a < b)".
func GreaterOrEqual(l, r Expr) Expr { return LogicalNot(LessThan{Left: l, Right: r}) }

// NotEquals builds (l != r) as !(l == r).
func NotEquals(l, r Expr) Expr { return LogicalNot(Equals{Left: l, Right: r}) }

// IsLvalue reports whether e can appear on the left of "=" or "+=": names
// and dereferences can, everything else cannot.
func IsLvalue(e Expr) bool {
	switch e.(type) {
	case Name, Read:
		return true
	default:
		return false
	}
}

// Stmt is any statement node.
type Stmt interface{ isStmt() }

// Constant binds Name to the compile-time constant Value. It appears both
// as a module-level declaration and as a statement inside a function body.
type Constant struct {
	Name  string
	Value Expr
}

func (Constant) isDecl() {}
func (Constant) isStmt() {}

// DeclareScalar introduces a single uninitialized word of storage.
type DeclareScalar struct{ Name string }

func (DeclareScalar) isDecl() {}
func (DeclareScalar) isStmt() {}

// DeclareArray introduces Size contiguous words of storage.
type DeclareArray struct {
	Name string
	Size Expr
}

func (DeclareArray) isDecl() {}
func (DeclareArray) isStmt() {}

// Assign evaluates Right and stores it at the lvalue Left.
type Assign struct{ Left, Right Expr }

func (Assign) isStmt() {}

// AddAssign evaluates Left += Right.
type AddAssign struct{ Left, Right Expr }

func (AddAssign) isStmt() {}

// If runs Then if Condition is nonzero, else Else (which may be empty, or
// a single nested If for an "else if" chain).
type If struct {
	Condition  Expr
	Then, Else []Stmt
}

func (If) isStmt() {}

// While runs Body repeatedly while Condition is nonzero.
type While struct {
	Condition Expr
	Body      []Stmt
}

func (While) isStmt() {}

// Output evaluates Value and suspends the machine to emit it.
type Output struct{ Value Expr }

func (Output) isStmt() {}

// Return evaluates Value, writes it to the caller's return slot, and jumps
// back to the caller.
type Return struct{ Value Expr }

func (Return) isStmt() {}

// Break jumps to the end of the innermost enclosing loop.
type Break struct{}

func (Break) isStmt() {}

// Continue jumps to the condition test of the innermost enclosing loop.
type Continue struct{}

func (Continue) isStmt() {}

// Halt stops the machine.
type Halt struct{}

func (Halt) isStmt() {}

// Decl is any top-level module declaration: Constant, DeclareScalar,
// DeclareArray, or FunctionDef.
type Decl interface{ isDecl() }

// FunctionDef defines a function with the given parameter names and body.
type FunctionDef struct {
	Name       string
	Parameters []string
	Body       []Stmt
}

func (FunctionDef) isDecl() {}

// Import names a dotted module path, e.g. "a.b.c" for "import a.b.c;".
type Import struct{ Parts []string }

// Resolve returns the file path this import names, relative to context
// (the directory the importing module lives in).
func (i Import) Resolve(context string) string {
	parts := append([]string{context}, i.Parts...)
	return filepath.Join(parts...) + ".is"
}

// Module is one parsed source file: its own path, its imports, and its
// top-level declarations.
type Module struct {
	Path    string
	Imports []Import
	Body    []Decl
}

// Context is the directory Module's own imports resolve relative to.
func (m Module) Context() string {
	return filepath.Dir(m.Path)
}
