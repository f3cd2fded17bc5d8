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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunEmitsIntcode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.is")
	out := filepath.Join(dir, "main.ic")
	src := "function main() {\n  output 1;\n  halt;\n}\n"
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(in, out, "intcode"); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ",") {
		t.Fatalf("expected comma-separated intcode output, got %q", data)
	}
}

func TestRunEmitsAssemblyText(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.is")
	out := filepath.Join(dir, "main.asm")
	src := "function main() {\n  output 1;\n  halt;\n}\n"
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(in, out, "assembly"); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "halt") {
		t.Fatalf("expected assembly text mentioning halt, got %q", data)
	}
}

func TestRunRejectsInvalidOutputType(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.is")
	if err := os.WriteFile(in, []byte("function main() {\n  halt;\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(in, filepath.Join(dir, "out"), "yaml"); err == nil {
		t.Fatal("expected an error for an invalid output type")
	}
}
