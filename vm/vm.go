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

package vm

import "github.com/pkg/errors"

// State describes why Resume returned control to the caller.
type State int

const (
	// Ready means the instance can be resumed immediately; Resume never
	// actually returns this value, it is the zero state before first run.
	Ready State = iota
	// WaitingForInput means the program executed an input instruction and
	// is blocked until ProvideInput is called.
	WaitingForInput
	// Output means the program executed an output instruction; the value
	// is available via GetOutput.
	Output
	// Halt means the program executed halt. Resume must not be called
	// again.
	Halt
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case WaitingForInput:
		return "waiting_for_input"
	case Output:
		return "output"
	case Halt:
		return "halt"
	default:
		return "unknown"
	}
}

// Instance is one running (or haltable) copy of a program loaded into
// memory.
type Instance struct {
	mem          *memory
	pc           Word
	relativeBase Word
	state        State
	inputAddress Word
	outputValue  Word
	insCount     int64
	traceHandler TraceHandler
}

// Option configures an Instance at construction time.
type Option func(*Instance) error

// TraceHandler is called once per instruction, immediately before it
// executes, with the address the instruction was fetched from.
type TraceHandler func(i *Instance, pc Word)

// Trace installs a handler that is invoked before every instruction. It is
// meant for interactive debugging; the default is no tracing.
func Trace(h TraceHandler) Option {
	return func(i *Instance) error {
		i.traceHandler = h
		return nil
	}
}

// New creates a new Instance with the given program loaded into memory
// starting at address 0.
func New(program []Word, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem:   newMemory(),
		state: Ready,
	}
	i.mem.loadProgram(program)
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, errors.Wrap(err, "New")
		}
	}
	return i, nil
}

// State returns the instance's current suspend state.
func (i *Instance) State() State { return i.state }

// Done reports whether the program has halted.
func (i *Instance) Done() bool { return i.state == Halt }

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 { return i.insCount }

// PC returns the current instruction pointer.
func (i *Instance) PC() Word { return i.pc }

// RelativeBase returns the current relative base register.
func (i *Instance) RelativeBase() Word { return i.relativeBase }

// PeekWord reads a word from memory without affecting execution state. It
// is intended for debugging and disassembly; it allocates the backing page
// like any other read.
func (i *Instance) PeekWord(addr Word) Word { return i.mem.at(addr) }

// ProvideInput satisfies a pending WaitingForInput suspend by writing x to
// the address the program requested and advancing the instruction pointer
// past the input instruction.
func (i *Instance) ProvideInput(x Word) error {
	if i.state != WaitingForInput {
		return errors.New("ProvideInput: instance is not waiting for input")
	}
	i.mem.set(i.inputAddress, x)
	i.pc += 2
	i.state = Ready
	return nil
}

// GetOutput consumes a pending Output suspend and advances the instruction
// pointer past the output instruction.
func (i *Instance) GetOutput() (Word, error) {
	if i.state != Output {
		return 0, errors.New("GetOutput: instance has no pending output")
	}
	v := i.outputValue
	i.pc += 2
	i.state = Ready
	return v, nil
}

// Resume executes instructions until the program needs input, produces
// output, or halts, then returns the new state. It must not be called again
// once it has returned Halt, nor while the instance is WaitingForInput or
// holding unread Output.
func (i *Instance) Resume() (State, error) {
	if i.state != Ready {
		return i.state, errors.Errorf("Resume: instance is not ready (state=%v)", i.state)
	}
	for {
		if i.traceHandler != nil {
			i.traceHandler(i, i.pc)
		}
		d, err := decodeWord(i.mem.at(i.pc))
		if err != nil {
			return Halt, errors.Wrapf(err, "Resume: pc=%d", i.pc)
		}
		i.insCount++
		switch d.op {
		case OpAdd:
			a, b := i.get(d, 0), i.get(d, 1)
			if err := i.put(d, 2, a+b); err != nil {
				return Halt, err
			}
			i.pc += 4
		case OpMul:
			a, b := i.get(d, 0), i.get(d, 1)
			if err := i.put(d, 2, a*b); err != nil {
				return Halt, err
			}
			i.pc += 4
		case OpLessThan:
			a, b := i.get(d, 0), i.get(d, 1)
			if err := i.put(d, 2, boolWord(a < b)); err != nil {
				return Halt, err
			}
			i.pc += 4
		case OpEquals:
			a, b := i.get(d, 0), i.get(d, 1)
			if err := i.put(d, 2, boolWord(a == b)); err != nil {
				return Halt, err
			}
			i.pc += 4
		case OpJumpIfTrue:
			cond, target := i.get(d, 0), i.get(d, 1)
			if cond != 0 {
				i.pc = target
			} else {
				i.pc += 3
			}
		case OpJumpIfFalse:
			cond, target := i.get(d, 0), i.get(d, 1)
			if cond == 0 {
				i.pc = target
			} else {
				i.pc += 3
			}
		case OpAdjustRelativeBase:
			i.relativeBase += i.get(d, 0)
			i.pc += 2
		case OpInput:
			addr, err := i.writeAddress(d, 0)
			if err != nil {
				return Halt, err
			}
			i.inputAddress = addr
			i.state = WaitingForInput
			return i.state, nil
		case OpOutput:
			i.outputValue = i.get(d, 0)
			i.state = Output
			return i.state, nil
		case OpHalt:
			i.state = Halt
			return i.state, nil
		default:
			return Halt, errors.Errorf("Resume: illegal opcode at pc=%d", i.pc)
		}
	}
}

func boolWord(b bool) Word {
	if b {
		return 1
	}
	return 0
}

// get reads the value of the paramIndex-th operand of the instruction at
// i.pc according to its decoded addressing mode.
func (i *Instance) get(d decoded, paramIndex int) Word {
	arg := i.mem.at(i.pc + Word(paramIndex) + 1)
	switch d.params[paramIndex] {
	case ModeImmediate:
		return arg
	case ModeRelative:
		return i.mem.at(i.relativeBase + arg)
	default: // ModeAddress
		return i.mem.at(arg)
	}
}

// writeAddress resolves the paramIndex-th operand of the instruction at
// i.pc to the address it names. Immediate mode is rejected by decodeWord
// before execution reaches here for every write-capable operand.
func (i *Instance) writeAddress(d decoded, paramIndex int) (Word, error) {
	arg := i.mem.at(i.pc + Word(paramIndex) + 1)
	switch d.params[paramIndex] {
	case ModeRelative:
		return i.relativeBase + arg, nil
	case ModeAddress:
		return arg, nil
	default:
		return 0, errors.Errorf("writeAddress: illegal immediate write operand at pc=%d", i.pc)
	}
}

func (i *Instance) put(d decoded, paramIndex int, value Word) error {
	addr, err := i.writeAddress(d, paramIndex)
	if err != nil {
		return err
	}
	i.mem.set(addr, value)
	return nil
}

func errIllegalOpcode(w Word) error {
	return errors.Errorf("illegal instruction word %d", w)
}
