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
	"reflect"
	"testing"
)

func TestStripArgsForIde(t *testing.T) {
	tests := []struct {
		name       string
		sourceFile string
		args       []string
		want       []string
	}{
		{
			name:       "empty",
			sourceFile: "a.c",
			args:       nil,
			want:       []string{},
		},
		{
			name:       "removes source file",
			sourceFile: "a.c",
			args:       []string{"-g", "a.c", "-O2"},
			want:       []string{"-g", "-O2"},
		},
		{
			name:       "removes output flag and argument",
			sourceFile: "a.c",
			args:       []string{"-g", "-o", "a.o", "-O2"},
			want:       []string{"-g", "-O2"},
		},
		{
			name:       "removes long output flag forms",
			sourceFile: "a.c",
			args:       []string{"--output", "a.o", "--output=b.o", "-g"},
			want:       []string{"-g"},
		},
		{
			name:       "removes dependency generation flags",
			sourceFile: "a.c",
			args:       []string{"-MD", "-MF", "a.d", "-MTa.o", "-MP", "-g"},
			want:       []string{"-g"},
		},
		{
			name:       "removes compile only flag",
			sourceFile: "a.c",
			args:       []string{"-c", "-g"},
			want:       []string{"-g"},
		},
		{
			name:       "keeps unrelated flags that share prefixes",
			sourceFile: "a.c",
			args:       []string{"-march=armv8-a", "-municode", "-Os"},
			want:       []string{"-march=armv8-a", "-municode", "-Os"},
		},
		{
			name:       "empty source file strips nothing extra",
			sourceFile: "",
			args:       []string{"", "-g"},
			want:       []string{"", "-g"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripArgsForIde(tt.sourceFile, tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}

			// Stripping is idempotent.
			again := StripArgsForIde(tt.sourceFile, got)
			if !reflect.DeepEqual(again, got) {
				t.Errorf("stripping twice changed result: %q then %q", got, again)
			}
		})
	}
}
