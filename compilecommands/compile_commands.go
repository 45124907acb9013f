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

// Package compilecommands reads and writes C/C++ build metadata files, a
// compact binary representation of the compile commands discovered during a
// native build.  The encoder interns repeated strings and flag lists so that
// runs of files compiled with the same compiler invocation cost a few bytes
// each; the decoder streams records back out without materializing the whole
// list in memory.
package compilecommands

import (
	"strings"
)

// Fallback values substituted when streaming a file written by a version of
// the format that predates the field.  They are real, greppable strings
// rather than empty values so that a record missing the field is
// distinguishable from a record that legitimately recorded an empty one.
const (
	// FallbackTarget is reported as the target of records read from files
	// that predate the target field.
	FallbackTarget = "{target-not-recorded-by-older-format}"

	// FallbackOutputFile is reported as the output file of records read from
	// files that predate the output file field.
	FallbackOutputFile = "{output-file-not-recorded-by-older-format}"
)

// CompileCommand is a single compile command record streamed out of a build
// metadata file.  SourceFileIndex is the 0-based position of this record
// among the file records in the stream and SourceFileCount is the total
// number of file records.
type CompileCommand struct {
	SourceFile       string
	Compiler         string
	Flags            []string
	WorkingDirectory string
	OutputFile       string
	Target           string
	SourceFileIndex  int
	SourceFileCount  int
}

// Flags that name an output or dependency file in their following argument.
var stripFlagsWithArg = map[string]bool{
	"-o":       true,
	"--output": true,
	"-MF":      true,
	"-MT":      true,
	"-MQ":      true,
}

// Prefixes of flags that name an output or dependency file in the same
// argument.
var stripFlagsWithImmediateArg = []string{
	"--output=",
	"-MF",
	"-MT",
	"-MQ",
}

// Flags that control compilation or dependency generation but carry no
// argument.
var stripFlagsWithoutArg = map[string]bool{
	"-c":   true,
	"-M":   true,
	"-MM":  true,
	"-MD":  true,
	"-MMD": true,
	"-MG":  true,
	"-MP":  true,
}

// StripArgsForIde removes from args the source file itself plus the flags
// that only make sense when actually running the compiler: the output file,
// the -M* dependency generation family, and -c.  What remains is suitable
// for feeding to an IDE's code model.  Stripping is idempotent.
func StripArgsForIde(sourceFile string, args []string) []string {
	stripped := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == sourceFile && sourceFile != "" {
			continue
		}
		if stripFlagsWithoutArg[arg] {
			continue
		}
		if stripFlagsWithArg[arg] {
			// Skip the flag's argument too.
			i++
			continue
		}
		if hasImmediateArg(arg) {
			continue
		}
		stripped = append(stripped, arg)
	}
	return stripped
}

func hasImmediateArg(arg string) bool {
	for _, prefix := range stripFlagsWithImmediateArg {
		// An exact match is the bare flag, already handled as a
		// flag-with-argument or no-argument flag.
		if len(arg) > len(prefix) && strings.HasPrefix(arg, prefix) {
			return true
		}
	}
	return false
}
