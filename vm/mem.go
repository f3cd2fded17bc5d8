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

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Word is one cell of machine memory: a signed 64-bit integer.
type Word int64

const pageSize = 1024

// memory is a sparse, page-allocated array of Words addressed from 0. Pages
// are allocated lazily on first touch, by either a read or a write, and an
// unallocated cell reads as zero.
type memory struct {
	pages map[int64]*[pageSize]Word
}

func newMemory() *memory {
	return &memory{pages: make(map[int64]*[pageSize]Word)}
}

func (m *memory) page(index int64) *[pageSize]Word {
	p, ok := m.pages[index]
	if !ok {
		p = &[pageSize]Word{}
		m.pages[index] = p
	}
	return p
}

func (m *memory) at(addr Word) Word {
	i := int64(addr)
	p := m.page(i / pageSize)
	return p[i%pageSize]
}

func (m *memory) set(addr Word, v Word) {
	i := int64(addr)
	p := m.page(i / pageSize)
	p[i%pageSize] = v
}

// loadProgram copies the given words into memory starting at address 0.
func (m *memory) loadProgram(words []Word) {
	for i, w := range words {
		m.set(Word(i), w)
	}
}

// ParseProgram reads an encoded program: a single line of comma-separated
// signed decimal integers, optionally surrounded by whitespace. It is the
// inverse of FormatProgram.
func ParseProgram(r io.Reader) ([]Word, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "ParseProgram")
	}
	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	})
	words := make([]Word, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "ParseProgram: invalid word %q", f)
		}
		words = append(words, Word(n))
	}
	if len(words) == 0 {
		return nil, errors.New("ParseProgram: empty program")
	}
	return words, nil
}

// FormatProgram writes words as comma-separated signed decimal integers
// followed by a newline.
func FormatProgram(w io.Writer, words []Word) error {
	// Every field after the first write is unconditional; latch the first
	// error instead of checking after each one.
	var firstErr error
	write := func(s string) {
		if firstErr != nil {
			return
		}
		if _, err := io.WriteString(w, s); err != nil {
			firstErr = err
		}
	}
	for i, word := range words {
		if i > 0 {
			write(",")
		}
		write(strconv.FormatInt(int64(word), 10))
	}
	write("\n")
	return errors.Wrap(firstErr, "FormatProgram")
}
