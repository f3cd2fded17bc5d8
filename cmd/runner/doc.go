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

// Command runner loads and executes a single program file.
//
// Usage:
//
//	runner [--debug] <filename>
//
// The extension of filename selects how it's loaded: ".ic" is an already
// encoded machine word stream, ".asm" is symbolic assembly, ".is" is a
// source module (transitively compiled with its imports).
//
// Without --debug, stdin is switched to raw mode and fed to the VM's input
// instruction one byte at a time; each output word is written to stdout
// truncated to its low byte.
//
// With --debug, the executed instruction stream is traced to stderr, and
// stdin/stdout are instead driven through an interactive liner session:
// "input> " prompts supply a line of text a byte at a time whenever the
// program asks for input, and "(debug) " prompts after each output accept
// "c"/"continue" to stop pausing or "q"/"quit" to abort.
package main
