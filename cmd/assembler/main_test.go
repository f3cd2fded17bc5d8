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

func TestRunAssemblesFileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "prog.asm")
	out := filepath.Join(dir, "prog.ic")
	if err := os.WriteFile(in, []byte("halt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(in, out); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "99" {
		t.Fatalf("got %q, want %q", got, "99")
	}
}

func TestRunRejectsMissingInput(t *testing.T) {
	dir := t.TempDir()
	if err := run(filepath.Join(dir, "missing.asm"), filepath.Join(dir, "out.ic")); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}
