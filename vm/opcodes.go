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

// Opcode identifies one of the ten instructions the machine understands.
type Opcode int

const (
	OpIllegal            Opcode = 0
	OpAdd                Opcode = 1
	OpMul                Opcode = 2
	OpInput              Opcode = 3
	OpOutput             Opcode = 4
	OpJumpIfTrue         Opcode = 5
	OpJumpIfFalse        Opcode = 6
	OpLessThan           Opcode = 7
	OpEquals             Opcode = 8
	OpAdjustRelativeBase Opcode = 9
	OpHalt               Opcode = 99
)

// Mode identifies how an operand word is turned into an address or a value.
type Mode int

const (
	ModeAddress   Mode = 0
	ModeImmediate Mode = 1
	ModeRelative  Mode = 2
)

func isMode(x int64) bool { return x == 0 || x == 1 || x == 2 }

// size returns the number of words an instruction with the given opcode
// occupies, including the opcode word itself. It returns 0 for an opcode
// that is not one of the ten known instructions.
func (o Opcode) size() int {
	switch o {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		return 4
	case OpJumpIfTrue, OpJumpIfFalse:
		return 3
	case OpInput, OpOutput, OpAdjustRelativeBase:
		return 2
	case OpHalt:
		return 1
	default:
		return 0
	}
}

// decoded holds the opcode and per-parameter addressing modes extracted from
// one instruction word. params beyond the ones the opcode actually uses are
// left at ModeAddress and ignored.
type decoded struct {
	op     Opcode
	params [3]Mode
}

// decodeWord splits an instruction word into its opcode and parameter modes,
// validating that every mode digit is in range, that there are no leftover
// digits beyond the three parameter slots, and that no write-capable operand
// (the third parameter of a calculation, or the sole parameter of input)
// is in immediate mode.
func decodeWord(w Word) (decoded, error) {
	x := int64(w)
	code := x % 100
	if !isValidOpcode(code) {
		return decoded{}, errIllegalOpcode(w)
	}
	op := Opcode(code)
	x /= 100
	var d decoded
	d.op = op
	for i := 0; i < 3; i++ {
		m := x % 10
		if !isMode(m) {
			return decoded{}, errIllegalOpcode(w)
		}
		d.params[i] = Mode(m)
		x /= 10
	}
	if x != 0 {
		return decoded{}, errIllegalOpcode(w)
	}
	switch op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		if d.params[2] == ModeImmediate {
			return decoded{}, errIllegalOpcode(w)
		}
	case OpInput:
		if d.params[0] == ModeImmediate {
			return decoded{}, errIllegalOpcode(w)
		}
	}
	return d, nil
}

func isValidOpcode(code int64) bool {
	switch Opcode(code) {
	case OpAdd, OpMul, OpInput, OpOutput, OpJumpIfTrue, OpJumpIfFalse,
		OpLessThan, OpEquals, OpAdjustRelativeBase, OpHalt:
		return true
	default:
		return false
	}
}
