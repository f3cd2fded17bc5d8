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

// Command assembler reads symbolic .asm text and emits the comma-separated
// decimal machine encoding.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mbrt/intscript/asm"
	"github.com/mbrt/intscript/vm"
)

func main() {
	input := flag.String("input", "-", "file to read from")
	output := flag.String("output", "-", "file to write to")
	flag.Parse()

	if err := run(*input, *output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(input, output string) error {
	name, src, err := readSource(input)
	if err != nil {
		return err
	}
	words, err := asm.Assemble(name, src)
	if err != nil {
		return err
	}
	w, closeOut, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeOut()
	return vm.FormatProgram(w, words)
}

func readSource(name string) (string, string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "reading stdin")
		}
		return "stdin", string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", "", errors.Wrapf(err, "unable to open %q", name)
	}
	return name, string(data), nil
}

func openOutput(name string) (io.Writer, func(), error) {
	if name == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not open %q for writing", name)
	}
	return f, func() { f.Close() }, nil
}
