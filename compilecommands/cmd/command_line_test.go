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

package main

import (
	"reflect"
	"testing"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []string
	}{
		{
			name:    "empty",
			command: "",
			want:    nil,
		},
		{
			name:    "simple",
			command: "clang -g -c a.c -o a.o",
			want:    []string{"clang", "-g", "-c", "a.c", "-o", "a.o"},
		},
		{
			name:    "extra whitespace",
			command: "  clang \t -g  a.c ",
			want:    []string{"clang", "-g", "a.c"},
		},
		{
			name:    "single quotes",
			command: `clang '-DNAME=hello world' a.c`,
			want:    []string{"clang", "-DNAME=hello world", "a.c"},
		},
		{
			name:    "double quotes",
			command: `clang "-DNAME=hello world" a.c`,
			want:    []string{"clang", "-DNAME=hello world", "a.c"},
		},
		{
			name:    "escaped space",
			command: `clang -I/path/with\ space a.c`,
			want:    []string{"clang", "-I/path/with space", "a.c"},
		},
		{
			name:    "escaped quote inside double quotes",
			command: `clang "-DGREETING=\"hi\"" a.c`,
			want:    []string{"clang", `-DGREETING="hi"`, "a.c"},
		},
		{
			name:    "backslash inside double quotes",
			command: `clang "-DPATH=a\b" a.c`,
			want:    []string{"clang", `-DPATH=a\b`, "a.c"},
		},
		{
			name:    "no escapes inside single quotes",
			command: `clang '-DPATH=a\b' a.c`,
			want:    []string{"clang", `-DPATH=a\b`, "a.c"},
		},
		{
			name:    "quoted empty argument",
			command: `clang '' a.c`,
			want:    []string{"clang", "", "a.c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitCommand(tt.command)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
