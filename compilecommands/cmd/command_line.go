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
	"unicode"
)

const noQuote = '\x00'

// splitCommand splits a compilation database "command" string into
// arguments, honoring shell-style single quotes, double quotes and
// backslash escapes.
func splitCommand(command string) []string {
	var args []string
	var arg []byte
	inArg := false

	isEscaping := false
	quotingStart := byte(noQuote)
	for i := 0; i < len(command); i++ {
		c := command[i]
		switch {
		case isEscaping:
			if quotingStart == '"' {
				if !(c == '"' || c == '\\') {
					// '\"' or '\\' will be escaped under double quoting.
					arg = append(arg, '\\')
				}
			}
			arg = append(arg, c)
			isEscaping = false
		case c == '\\' && quotingStart != '\'':
			isEscaping = true
			inArg = true
		case quotingStart == noQuote && (c == '\'' || c == '"'):
			quotingStart = c
			// A quoted empty string is still an argument.
			inArg = true
		case quotingStart != noQuote && c == quotingStart:
			quotingStart = noQuote
		case quotingStart == noQuote && unicode.IsSpace(rune(c)):
			if inArg {
				args = append(args, string(arg))
			}
			arg = arg[:0]
			inArg = false
		default:
			arg = append(arg, c)
			inArg = true
		}
	}

	if inArg {
		args = append(args, string(arg))
	}

	return args
}
