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

// Command compiler reads a .is module plus its transitive imports and
// emits either assembly text or the encoded machine word stream.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mbrt/intscript/asm"
	"github.com/mbrt/intscript/codegen"
	"github.com/mbrt/intscript/source"
	"github.com/mbrt/intscript/vm"
)

func main() {
	input := flag.String("input", "-", "file to read from")
	output := flag.String("output", "-", "file to write to")
	outputType := flag.String("output_type", "intcode", "output format (assembly or intcode)")
	flag.Parse()

	if err := run(*input, *output, *outputType); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(input, output, outputType string) error {
	if outputType != "assembly" && outputType != "intcode" {
		return errors.Errorf("invalid output type %q", outputType)
	}
	root, err := resolveRoot(input)
	if err != nil {
		return err
	}
	modules, err := source.Load(root)
	if err != nil {
		return err
	}
	ctx, err := codegen.Generate(modules, root)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeOut()

	statements := ctx.Program()
	if outputType == "assembly" {
		_, err := io.WriteString(w, asm.Format(statements))
		return errors.Wrap(err, "writing assembly output")
	}
	words, err := asm.Encode(statements)
	if err != nil {
		return err
	}
	return vm.FormatProgram(w, words)
}

// resolveRoot mirrors the reference's --input handling: "-" means read the
// root module from stdin into a temporary file, since the loader always
// works from paths (it needs a directory to resolve imports against).
func resolveRoot(input string) (string, error) {
	if input != "-" {
		return input, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "reading stdin")
	}
	f, err := os.CreateTemp("", "intscript-*.is")
	if err != nil {
		return "", errors.Wrap(err, "creating temporary file for stdin input")
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return "", errors.Wrap(err, "writing temporary file for stdin input")
	}
	return f.Name(), nil
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
