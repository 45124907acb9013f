// Copyright 2024 Google Inc. All rights reserved.
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

package compilecommands

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeRecord is the input side of a round trip; a CompileCommand without
// the derived index fields.
type writeRecord struct {
	sourceFile       string
	compiler         string
	flags            []string
	workingDirectory string
	outputFile       string
	target           string
}

func encodeRecords(t *testing.T, path string, records []writeRecord) {
	t.Helper()
	encoder, err := NewEncoder(path)
	if err != nil {
		t.Fatalf("failed to create encoder: %s", err)
	}
	for _, r := range records {
		err := encoder.WriteCompileCommand(r.sourceFile, r.compiler, r.flags, r.workingDirectory, r.outputFile, r.target)
		if err != nil {
			t.Fatalf("failed to write record: %s", err)
		}
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("failed to close encoder: %s", err)
	}
}

func streamRecords(t *testing.T, path string) []CompileCommand {
	t.Helper()
	var got []CompileCommand
	err := StreamCompileCommands(path, func(c *CompileCommand) error {
		// The callback's record is reused; take a copy.
		copied := *c
		copied.Flags = append([]string(nil), c.Flags...)
		got = append(got, copied)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to stream %s: %s", path, err)
	}
	return got
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		records []writeRecord
	}{
		{
			name: "single",
			records: []writeRecord{
				{"a.c", "clang", []string{"-g", "-O2"}, "/work", "a.o", "debug"},
			},
		},
		{
			name:    "empty",
			records: nil,
		},
		{
			name: "empty and duplicate heavy flags",
			records: []writeRecord{
				{"a.c", "clang", nil, "/work", "a.o", ""},
				{"b.c", "clang", []string{"-g", "-g", "-g"}, "/work", "b.o", ""},
				{"c.c", "clang", []string{}, "/work", "c.o", ""},
			},
		},
		{
			name: "context changes",
			records: []writeRecord{
				{"a.c", "clang", []string{"-g"}, "/work", "a.o", "debug"},
				{"b.c", "clang", []string{"-g"}, "/work", "b.o", "debug"},
				{"c.cpp", "clang++", []string{"-g", "-std=c++17"}, "/work", "c.o", "debug"},
				{"d.c", "clang", []string{"-g"}, "/work", "d.o", "release"},
			},
		},
		{
			name: "many records",
			records: func() []writeRecord {
				var records []writeRecord
				for i := 0; i < 1000; i++ {
					records = append(records, writeRecord{
						sourceFile:       fmt.Sprintf("src/file%d.c", i),
						compiler:         "clang",
						flags:            []string{"-g", "-O2", "-Iinclude"},
						workingDirectory: "/work",
						outputFile:       fmt.Sprintf("out/file%d.o", i),
						target:           "app",
					})
				}
				return records
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "compile_commands.json.bin")
			encodeRecords(t, path, tt.records)
			got := streamRecords(t, path)

			if len(got) != len(tt.records) {
				t.Fatalf("expected %d records, got %d", len(tt.records), len(got))
			}
			for i, r := range tt.records {
				want := CompileCommand{
					SourceFile:       r.sourceFile,
					Compiler:         r.compiler,
					Flags:            append([]string{}, r.flags...),
					WorkingDirectory: r.workingDirectory,
					OutputFile:       r.outputFile,
					Target:           r.target,
					SourceFileIndex:  i,
					SourceFileCount:  len(tt.records),
				}
				g := got[i]
				if len(g.Flags) == 0 {
					g.Flags = []string{}
				}
				if !reflect.DeepEqual(g, want) {
					t.Errorf("record %d: expected %+v, got %+v", i, want, g)
				}
			}
		})
	}
}

func TestContextInterning(t *testing.T) {
	tests := []struct {
		name            string
		records         []writeRecord
		wantMessages    int
		wantFiles       int
		wantStrings     int
		wantStringLists int
	}{
		{
			name: "shared context emits one context message",
			records: []writeRecord{
				{"a.c", "clang", []string{"-g"}, "/work", "a.o", "app"},
				{"b.c", "clang", []string{"-g"}, "/work", "b.o", "app"},
				{"c.c", "clang", []string{"-g"}, "/work", "c.o", "app"},
			},
			// 1 context + 3 files.
			wantMessages: 4,
			wantFiles:    3,
			// clang, -g, /work, app, a.c, a.o, b.c, b.o, c.c, c.o
			wantStrings:     10,
			wantStringLists: 1,
		},
		{
			name: "context change emits a new context message",
			records: []writeRecord{
				{"a.c", "clang", []string{"-g"}, "/work", "a.o", "app"},
				{"b.c", "clang", []string{"-O2"}, "/work", "b.o", "app"},
			},
			wantMessages:    4,
			wantFiles:       2,
			wantStrings:     9,
			wantStringLists: 2,
		},
		{
			name: "alternating contexts re-emit but intern once",
			records: []writeRecord{
				{"a.c", "clang", []string{"-g"}, "/work", "a.o", "app"},
				{"b.c", "clang", []string{"-O2"}, "/work", "b.o", "app"},
				{"c.c", "clang", []string{"-g"}, "/work", "c.o", "app"},
			},
			// 3 contexts + 3 files; only two distinct flag lists.
			wantMessages:    6,
			wantFiles:       3,
			wantStrings:     11,
			wantStringLists: 2,
		},
		{
			name: "same strings across contexts intern once",
			records: []writeRecord{
				{"a.c", "clang", []string{"-g", "-g"}, "/work", "a.c", "clang"},
			},
			wantMessages: 2,
			wantFiles:    1,
			// clang, -g, /work, a.c
			wantStrings:     4,
			wantStringLists: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "compile_commands.json.bin")
			encodeRecords(t, path, tt.records)

			f, err := openMetadataFile(path)
			if err != nil {
				t.Fatalf("failed to open %s: %s", path, err)
			}
			r := bufReader{buf: f.buf, pos: f.commandsOffset}
			gotMessages, err := r.readInt()
			if err != nil {
				t.Fatalf("failed to read message count: %s", err)
			}
			gotFiles, err := r.readInt()
			if err != nil {
				t.Fatalf("failed to read file message count: %s", err)
			}

			if gotMessages != tt.wantMessages {
				t.Errorf("expected %d messages, got %d", tt.wantMessages, gotMessages)
			}
			if gotFiles != tt.wantFiles {
				t.Errorf("expected %d file messages, got %d", tt.wantFiles, gotFiles)
			}
			if len(f.strings)-1 != tt.wantStrings {
				t.Errorf("expected %d interned strings, got %d (%q)", tt.wantStrings, len(f.strings)-1, f.strings[1:])
			}
			if len(f.lists) != tt.wantStringLists {
				t.Errorf("expected %d interned string lists, got %d", tt.wantStringLists, len(f.lists))
			}
		})
	}
}

func TestLargeStrings(t *testing.T) {
	// Strings much larger than the write window land in the string table
	// section, written with positioned writes at close.
	path := filepath.Join(t.TempDir(), "compile_commands.json.bin")
	longFlag := "-D" + strings.Repeat("x", 3*writeWindowSize)
	records := []writeRecord{
		{"a.c", "clang", []string{longFlag}, "/work", "a.o", "app"},
		{"b.c", "clang", []string{longFlag, "-g"}, "/work", "b.o", "app"},
	}
	encodeRecords(t, path, records)
	got := streamRecords(t, path)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Flags[0] != longFlag {
		t.Errorf("long flag did not round trip")
	}
}

func TestConcurrentWriterRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compile_commands.json.bin")

	first, err := NewEncoder(path)
	if err != nil {
		t.Fatalf("failed to create first encoder: %s", err)
	}

	if _, err := NewEncoder(path); err == nil {
		t.Fatalf("expected second encoder to fail while first holds the lock")
	} else if !strings.Contains(err.Error(), "locked") {
		t.Fatalf("expected lock error, got %s", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("failed to close first encoder: %s", err)
	}

	// The lock is released with the encoder; a new writer may now open it.
	second, err := NewEncoder(path)
	if err != nil {
		t.Fatalf("failed to create encoder after close: %s", err)
	}
	if err := second.Close(); err != nil {
		t.Fatalf("failed to close second encoder: %s", err)
	}
}

func TestWriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compile_commands.json.bin")
	encoder, err := NewEncoder(path)
	if err != nil {
		t.Fatalf("failed to create encoder: %s", err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("failed to close encoder: %s", err)
	}
	if err := encoder.WriteCompileCommand("a.c", "clang", nil, "/work", "a.o", ""); err == nil {
		t.Errorf("expected write after close to fail")
	}
	if err := encoder.Close(); err == nil {
		t.Errorf("expected second close to fail")
	}
}
