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

// Command runner loads a .ic, .asm, or .is program, compiling as needed,
// and executes it with stdin/stdout wired to the VM's input/output.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/mbrt/intscript/asm"
	"github.com/mbrt/intscript/codegen"
	"github.com/mbrt/intscript/source"
	"github.com/mbrt/intscript/vm"
)

func main() {
	debug := flag.Bool("debug", false, "show executed instructions")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: runner [--debug] <filename>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(filename string, debug bool) error {
	words, err := load(filename)
	if err != nil {
		return err
	}

	var opts []vm.Option
	if debug {
		opts = append(opts, vm.Trace(func(i *vm.Instance, pc vm.Word) {
			fmt.Fprintf(os.Stderr, "% 8d  pc=%d rb=%d word=%d\n", i.InstructionCount(), pc, i.RelativeBase(), i.PeekWord(pc))
		}))
	}
	inst, err := vm.New(words, opts...)
	if err != nil {
		return err
	}

	if debug {
		return runDebug(inst)
	}
	return runInteractive(inst)
}

// load reads filename and returns the encoded program, compiling from
// source or assembly first as needed based on the file extension.
func load(filename string) ([]vm.Word, error) {
	switch filepath.Ext(filename) {
	case ".ic":
		f, err := os.Open(filename)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to open %q", filename)
		}
		defer f.Close()
		return vm.ParseProgram(f)
	case ".asm":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to open %q", filename)
		}
		return asm.Assemble(filename, string(data))
	case ".is":
		modules, err := source.Load(filename)
		if err != nil {
			return nil, err
		}
		ctx, err := codegen.Generate(modules, filename)
		if err != nil {
			return nil, err
		}
		return asm.Encode(ctx.Program())
	default:
		return nil, errors.Errorf("unknown extension %q, must be \".ic\", \".asm\", or \".is\"", filepath.Ext(filename))
	}
}

// runInteractive drives the VM against a raw, unbuffered stdin/stdout pair,
// the way the reference's console mode does: one byte in, one byte out, no
// line buffering or local echo in the way.
func runInteractive(inst *vm.Instance) error {
	restore, err := setRawIO()
	if err == nil {
		defer restore()
	}

	in := make([]byte, 1)
	for {
		state, err := inst.Resume()
		if err != nil {
			return err
		}
		switch state {
		case vm.WaitingForInput:
			n, rerr := os.Stdin.Read(in)
			var v vm.Word = -1
			if n > 0 {
				v = vm.Word(in[0])
			} else if rerr != nil && rerr != io.EOF {
				return errors.Wrap(rerr, "reading stdin")
			}
			if err := inst.ProvideInput(v); err != nil {
				return err
			}
		case vm.Output:
			v, err := inst.GetOutput()
			if err != nil {
				return err
			}
			if _, err := os.Stdout.Write([]byte{byte(v & 0xff)}); err != nil {
				return errors.Wrap(err, "writing stdout")
			}
		case vm.Halt:
			return nil
		}
	}
}

// runDebug drives the VM through an interactive liner session instead of
// raw stdin/stdout: after each output it prompts for a command ("c" or
// "continue" stops pausing, "q" or "quit" aborts, anything else runs on to
// the next output), and prompts for a line of text whenever the program
// asks for input, feeding it back one byte at a time.
func runDebug(inst *vm.Instance) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	pending := new(bytes.Buffer)
	continuing := false

	for {
		state, err := inst.Resume()
		if err != nil {
			return err
		}
		switch state {
		case vm.WaitingForInput:
			if pending.Len() == 0 {
				line, err := ln.Prompt("input> ")
				if err != nil {
					if err == io.EOF {
						if err := inst.ProvideInput(-1); err != nil {
							return err
						}
						continue
					}
					return errors.Wrap(err, "reading debug input")
				}
				pending.WriteString(line)
				pending.WriteByte('\n')
			}
			b, _ := pending.ReadByte()
			if err := inst.ProvideInput(vm.Word(b)); err != nil {
				return err
			}
		case vm.Output:
			v, err := inst.GetOutput()
			if err != nil {
				return err
			}
			if _, err := os.Stdout.Write([]byte{byte(v & 0xff)}); err != nil {
				return errors.Wrap(err, "writing stdout")
			}
		case vm.Halt:
			return nil
		}

		if continuing || state != vm.Output {
			continue
		}
		cmd, err := ln.Prompt("(debug) ")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "reading debug command")
		}
		switch strings.TrimSpace(cmd) {
		case "c", "continue":
			continuing = true
		case "q", "quit":
			return nil
		}
	}
}
