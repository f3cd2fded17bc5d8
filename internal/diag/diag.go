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

// Package diag is the shared file:line:col diagnostic type used by the
// source and asm parsers, so that a syntax error looks the same whichever
// of the two languages it was found in. Code generation errors (an
// undefined name, an import cycle) do not carry a position.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// Position is a location in a source file, 1-based like most editors.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Error is an error tied to a source position.
type Error struct {
	Pos Position
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error at pos from a format string, the way
// github.com/pkg/errors.Errorf builds a plain one.
func Errorf(pos Position, format string, args ...interface{}) error {
	return &Error{Pos: pos, Err: errors.Errorf(format, args...)}
}

// Wrap attaches pos to err, the way errors.Wrap attaches a message.
func Wrap(pos Position, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Pos: pos, Err: err}
}
