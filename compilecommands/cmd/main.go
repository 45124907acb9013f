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
	"flag"
	"fmt"
	"os"

	"android/cxxbuild/compilecommands"
)

// This tool inspects and converts C/C++ build metadata files: dumping them
// as a clang compilation database or a textproto, building them from a
// compilation database, and merging several metadata files into one.

func main() {
	flags := flag.NewFlagSet("flags", flag.ExitOnError)

	// Hide the flag package to prevent accidental references to flag instead of flags.
	flag := struct{}{}
	_ = flag

	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(flags.Output(), "  %s -dump <metadata file> [-strip_args_for_ide] [-o <output>]\n", os.Args[0])
		fmt.Fprintf(flags.Output(), "  %s -proto <metadata file> [-o <output>]\n", os.Args[0])
		fmt.Fprintf(flags.Output(), "  %s -from_json <compile_commands.json> -o <metadata file>\n", os.Args[0])
		fmt.Fprintf(flags.Output(), "  %s -merge -o <metadata file> [<metadata file>...]\n", os.Args[0])
		fmt.Fprintf(flags.Output(), "  %s -version <metadata file>\n", os.Args[0])
		fmt.Fprintln(flags.Output())

		flags.PrintDefaults()
	}

	dump := flags.String("dump", "", "write a metadata file as a clang compilation database")
	proto := flags.String("proto", "", "write a metadata file as a textproto")
	fromJSON := flags.String("from_json", "", "build a metadata file from a clang compilation database")
	merge := flags.Bool("merge", false, "merge metadata files into one")
	version := flags.String("version", "", "print the format version of a metadata file")

	output := flags.String("o", "", "output file (defaults to stdout where supported)")
	stripArgsForIde := flags.Bool("strip_args_for_ide", false, "strip output and dependency flags from dumped commands")
	writeIfChanged := flags.Bool("write_if_changed", false, "only write the output file if it is modified")

	flags.Parse(os.Args[1:])

	modes := 0
	for _, set := range []bool{*dump != "", *proto != "", *fromJSON != "", *merge, *version != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		fmt.Fprintf(os.Stderr, "exactly one of -dump, -proto, -from_json, -merge or -version is required\n")
		flags.Usage()
		os.Exit(1)
	}

	var err error
	switch {
	case *dump != "":
		err = dumpCompilationDatabase(*dump, *output, *stripArgsForIde, *writeIfChanged)
	case *proto != "":
		err = dumpTextProto(*proto, *output, *writeIfChanged)
	case *fromJSON != "":
		if *output == "" {
			fmt.Fprintf(os.Stderr, "-from_json requires -o\n")
			os.Exit(1)
		}
		err = encodeCompilationDatabase(*fromJSON, *output)
	case *merge:
		if *output == "" {
			fmt.Fprintf(os.Stderr, "-merge requires -o\n")
			os.Exit(1)
		}
		err = mergeMetadataFiles(*output, flags.Args())
	case *version != "":
		err = printVersion(*version)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// mergeMetadataFiles streams each input metadata file into a single freshly
// encoded one.  Interning naturally re-deduplicates contexts shared across
// inputs.
func mergeMetadataFiles(output string, inputs []string) error {
	encoder, err := compilecommands.NewEncoder(output)
	if err != nil {
		return err
	}
	for _, input := range inputs {
		err := compilecommands.StreamCompileCommands(input, func(c *compilecommands.CompileCommand) error {
			return encoder.WriteCompileCommand(c.SourceFile, c.Compiler, c.Flags, c.WorkingDirectory, c.OutputFile, c.Target)
		})
		if err != nil {
			return err
		}
	}
	return encoder.Close()
}

func printVersion(input string) error {
	version, err := compilecommands.ReadCompileCommandsVersionNumber(input)
	if err != nil {
		return err
	}
	current, err := compilecommands.CompileCommandsFileIsCurrentVersion(input)
	if err != nil {
		return err
	}
	fmt.Printf("%d (current: %v)\n", version, current)
	return nil
}
