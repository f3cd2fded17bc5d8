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

// Package source implements the front end of the high-level language: a
// lexer/parser producing an abstract syntax tree, and a loader that
// resolves a module's transitive imports.
//
// # Grammar sketch
//
//	module     := import* declaration*
//	import     := "import" name ("." name)* ";"
//	declaration:= constant | "var" declInit ("," declInit)* ";" | function
//	function   := "function" name "(" (name ("," name)*)? ")" block
//	statement  := constant | "var" declAssign ("," declAssign)* ";"
//	            | if | while | output | return | break | continue | halt
//	            | expression ("=" expression)? ";"
//	expression := disjunction
//	disjunction:= conjunction ("||" conjunction)*
//	conjunction:= comparison ("&&" comparison)*
//	comparison := sum (("<"|"=="|">"|"<="|">="|"!=") sum)?
//	sum        := product (("+"|"-") product)*
//	product    := prefix ("*" prefix)*
//	prefix     := "*" prefix | "-" prefix | suffix
//	suffix     := term ( "[" expression "]" | "(" (expr ("," expr)*)? ")" )*
//	term       := integer | string | "(" expression ")" | "input" | name
//
// Imports resolve by dotted path: "import a.b.c;" in a module that lives at
// dir/m.is loads dir/a/b/c.is. Comparisons other than "<" and "==" are
// desugared at parse time in terms of those two and logical negation (via
// "== 0"), matching the reference compiler exactly: ">=" becomes
// "!(a < b)" rather than an operand swap, so that constant-folding and
// codegen only ever have to know about "<" and "==".
package source
