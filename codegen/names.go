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

package codegen

import "strconv"

// Function and global labels are minted directly from source-level names,
// not module-qualified: the reference compiler assumes one flat symbol
// space (modules "compile together", per spec's non-goals), and the
// import-redeclaration check is what's supposed to keep that space
// collision-free.

func argLabel(fn string, i int) string    { return "arg_" + fn + "_p" + strconv.Itoa(i) }
func outputLabel(fn string) string        { return "func_" + fn + "_output" }
func returnLabel(fn string) string        { return "func_" + fn + "_return" }
func entryLabel(fn string) string         { return "func_" + fn }
func localLabel(fn string, slot int) string { return "lv_" + fn + "_" + strconv.Itoa(slot) }
func globalLabel(name string) string      { return "gv_" + name }
