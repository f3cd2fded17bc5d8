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
	"github.com/pkg/errors"

	"github.com/mbrt/intscript/vm"
)

// Assemble parses and encodes source in one step, the way a one-shot
// command-line tool wants it. file is used only to annotate diagnostics.
func Assemble(file, source string) ([]vm.Word, error) {
	statements, err := Parse(file, source)
	if err != nil {
		return nil, err
	}
	words, err := Encode(statements)
	if err != nil {
		return nil, errors.Wrapf(err, "assembling %s", file)
	}
	return words, nil
}
