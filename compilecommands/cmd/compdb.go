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
	"encoding/json"
	"fmt"
	"os"

	"android/cxxbuild/compilecommands"
	"android/cxxbuild/compilecommands/compile_commands_proto"

	"github.com/google/blueprint/pathtools"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
)

// compdbEntry is one entry of a clang compilation database
// (compile_commands.json).  Either Command or Arguments is set.
type compdbEntry struct {
	Directory string   `json:"directory"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	File      string   `json:"file"`
	Output    string   `json:"output,omitempty"`
}

// dumpCompilationDatabase streams a metadata file and writes it out as a
// clang compilation database in the "arguments" form.
func dumpCompilationDatabase(input, output string, stripArgsForIde, writeIfChanged bool) error {
	var entries []compdbEntry
	err := compilecommands.StreamCompileCommands(input, func(c *compilecommands.CompileCommand) error {
		flags := c.Flags
		if stripArgsForIde {
			flags = compilecommands.StripArgsForIde(c.SourceFile, flags)
		}
		arguments := make([]string, 0, len(flags)+2)
		arguments = append(arguments, c.Compiler)
		arguments = append(arguments, flags...)
		arguments = append(arguments, c.SourceFile)
		entries = append(entries, compdbEntry{
			Directory: c.WorkingDirectory,
			Arguments: arguments,
			File:      c.SourceFile,
			Output:    c.OutputFile,
		})
		return nil
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling compilation database: %w", err)
	}
	return writeOutput(output, append(data, '\n'), writeIfChanged)
}

// dumpTextProto streams a metadata file and writes it out as a
// CompileCommands textproto.
func dumpTextProto(input, output string, writeIfChanged bool) error {
	commands := compile_commands_proto.CompileCommands{}
	err := compilecommands.StreamCompileCommands(input, func(c *compilecommands.CompileCommand) error {
		commands.Commands = append(commands.Commands, &compile_commands_proto.CompileCommand{
			SourceFile:       proto.String(c.SourceFile),
			Compiler:         proto.String(c.Compiler),
			Flags:            append([]string(nil), c.Flags...),
			WorkingDirectory: proto.String(c.WorkingDirectory),
			OutputFile:       proto.String(c.OutputFile),
			Target:           proto.String(c.Target),
		})
		return nil
	})
	if err != nil {
		return err
	}

	marshaller := prototext.MarshalOptions{Multiline: true}
	data, err := marshaller.Marshal(&commands)
	if err != nil {
		return fmt.Errorf("error marshalling textproto: %w", err)
	}
	return writeOutput(output, data, writeIfChanged)
}

// encodeCompilationDatabase builds a metadata file from a clang compilation
// database.  Compilation databases carry no target, so records are encoded
// with an empty one.
func encodeCompilationDatabase(input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}
	var entries []compdbEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse compilation database %s: %w", input, err)
	}

	encoder, err := compilecommands.NewEncoder(output)
	if err != nil {
		return err
	}
	for i, entry := range entries {
		arguments := entry.Arguments
		if len(arguments) == 0 {
			arguments = splitCommand(entry.Command)
		}
		if len(arguments) == 0 {
			return fmt.Errorf("%s: entry %d has neither arguments nor command", input, i)
		}
		compiler := arguments[0]
		flags := removeFirst(arguments[1:], entry.File)
		outputFile := entry.Output
		if outputFile == "" {
			outputFile = outputFromFlags(flags)
		}
		err := encoder.WriteCompileCommand(entry.File, compiler, flags, entry.Directory, outputFile, "")
		if err != nil {
			return err
		}
	}
	return encoder.Close()
}

// removeFirst returns args without the first occurrence of value.
func removeFirst(args []string, value string) []string {
	result := make([]string, 0, len(args))
	removed := false
	for _, arg := range args {
		if !removed && arg == value {
			removed = true
			continue
		}
		result = append(result, arg)
	}
	return result
}

// outputFromFlags extracts the output file named by a -o or --output flag.
func outputFromFlags(flags []string) string {
	for i, flag := range flags {
		switch {
		case flag == "-o" || flag == "--output":
			if i+1 < len(flags) {
				return flags[i+1]
			}
		case len(flag) > 2 && flag[:2] == "-o":
			return flag[2:]
		case len(flag) > len("--output=") && flag[:len("--output=")] == "--output=":
			return flag[len("--output="):]
		}
	}
	return ""
}

// writeOutput writes data to the output file, or stdout if none was given.
func writeOutput(output string, data []byte, writeIfChanged bool) error {
	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if writeIfChanged {
		err := pathtools.WriteFileIfChanged(output, data, 0666)
		if err != nil {
			return fmt.Errorf("error writing to %s: %w", output, err)
		}
		return nil
	}

	if err := os.WriteFile(output, data, 0666); err != nil {
		return fmt.Errorf("error writing to %s: %w", output, err)
	}
	return nil
}
