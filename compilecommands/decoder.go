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
	"bytes"
	"fmt"
	"io"
	"os"
)

// metadataFile is a build metadata file loaded fully into memory with its
// intern tables materialized.  Message decoding stays lazy; only the tables
// are resolved up front since messages reference them repeatedly by id.
type metadataFile struct {
	path    string
	buf     []byte
	version int
	hasBug  bool

	// strings is indexed by 1-based string id; slot 0 is the null string.
	strings []string
	// lists is indexed by 0-based string list id, resolved against strings.
	lists [][]string

	// commandsOffset is where the compile commands section body begins, and
	// messagesEnd is where the message stream must end (the start of the
	// next section).
	commandsOffset int
	messagesEnd    int
}

// openMetadataFile reads the whole file at path into memory, validates the
// magic, locates the sections, and loads the intern tables.  For files
// claiming version 2 it also runs the shape probe to detect b/201754404.
func openMetadataFile(path string) (*metadataFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(buf) < commandsOffset || !bytes.HasPrefix(buf, []byte(Magic)) {
		return nil, fmt.Errorf("%s is not a valid C/C++ build metadata file", path)
	}

	f := &metadataFile{path: path, buf: buf}

	r := bufReader{buf: buf, pos: versionOffset}
	f.version, err = r.readInt()
	if err != nil {
		return nil, corruptError(path, err)
	}
	sections, err := r.readInt()
	if err != nil {
		return nil, corruptError(path, err)
	}
	if sections < 0 || sections > (len(buf)-sectionIndexOffset)/sectionEntrySize {
		return nil, corruptError(path, fmt.Errorf("unreadable section index"))
	}

	type sectionEntry struct {
		section int
		offset  int64
	}
	index := make([]sectionEntry, 0, sections)
	for i := 0; i < sections; i++ {
		section, err := r.readInt()
		if err != nil {
			return nil, corruptError(path, err)
		}
		offset, err := r.readLong()
		if err != nil {
			return nil, corruptError(path, err)
		}
		index = append(index, sectionEntry{section, offset})
	}

	// The index is tiny; a linear scan per lookup is fine.
	findSection := func(section int) (int, error) {
		for _, entry := range index {
			if entry.section == section {
				if entry.offset <= 0 || entry.offset > int64(len(buf)) {
					return 0, corruptError(path, fmt.Errorf("section %d offset %d out of range", section, entry.offset))
				}
				return int(entry.offset), nil
			}
		}
		return 0, corruptError(path, fmt.Errorf("missing section %d", section))
	}

	f.commandsOffset, err = findSection(sectionCompileCommands)
	if err != nil {
		return nil, err
	}
	stringTableOffset, err := findSection(sectionStringTable)
	if err != nil {
		return nil, err
	}
	stringListsOffset, err := findSection(sectionStringLists)
	if err != nil {
		return nil, err
	}

	if err := f.loadStringTable(stringTableOffset); err != nil {
		return nil, err
	}
	if err := f.loadStringLists(stringListsOffset); err != nil {
		return nil, err
	}

	// Messages run from the commands section body to whichever section
	// comes next.
	f.messagesEnd = stringTableOffset
	if stringListsOffset > f.commandsOffset && stringListsOffset < f.messagesEnd {
		f.messagesEnd = stringListsOffset
	}
	if f.messagesEnd <= f.commandsOffset {
		return nil, corruptError(path, fmt.Errorf("section offsets overlap"))
	}

	if f.version == 2 {
		f.hasBug = f.hasBug201754404()
	}
	return f, nil
}

func (f *metadataFile) loadStringTable(offset int) error {
	r := bufReader{buf: f.buf, pos: offset}
	count, err := r.readInt()
	// Each string costs at least its length prefix, which bounds a sane
	// count by the bytes remaining.
	if err != nil || count < 0 || count > (len(f.buf)-r.pos)/4 {
		return corruptError(f.path, fmt.Errorf("unreadable string table"))
	}
	f.strings = make([]string, count+1)
	for i := 1; i <= count; i++ {
		f.strings[i], err = r.readUTF8()
		if err != nil {
			return corruptError(f.path, err)
		}
	}
	return nil
}

func (f *metadataFile) loadStringLists(offset int) error {
	r := bufReader{buf: f.buf, pos: offset}
	count, err := r.readInt()
	if err != nil || count < 0 || count > (len(f.buf)-r.pos)/4 {
		return corruptError(f.path, fmt.Errorf("unreadable string list table"))
	}
	f.lists = make([][]string, count)
	for i := 0; i < count; i++ {
		length, err := r.readInt()
		if err != nil || length < 0 || length > (len(f.buf)-r.pos)/4 {
			return corruptError(f.path, fmt.Errorf("unreadable string list table"))
		}
		list := make([]string, length)
		for j := 0; j < length; j++ {
			id, err := r.readInt()
			if err != nil {
				return corruptError(f.path, err)
			}
			// List elements are never null, so id 0 is invalid here.
			if id <= 0 || id >= len(f.strings) {
				return corruptError(f.path, fmt.Errorf("string index %d out of range", id))
			}
			list[j] = f.strings[id]
		}
		f.lists[i] = list
	}
	return nil
}

// hasBug201754404 reports whether a file claiming version 2 was actually
// written in the later shape that shipped without a version bump
// (b/201754404): a file message count in the header, the target in place of
// the output file in the context message, and the output file in the file
// message.
//
// The ambiguity is resolved by speculatively parsing the whole message
// stream under the correct-V2 hypothesis.  Out-of-range intern table
// indices and unknown message tags, which would be fatal corruption during
// a normal decode, are detection signals here: they mean the stream cannot
// be correct V2, so the file must be the buggy shape.  The probe runs over
// its own cursor and mutates no decoder state.
func (f *metadataFile) hasBug201754404() bool {
	// Clamp the probe's view so a read past the message stream fails
	// instead of wandering into the string table.
	r := bufReader{buf: f.buf[:f.messagesEnd], pos: f.commandsOffset}

	numMessages, err := r.readInt()
	if err != nil {
		return true
	}
	for i := 0; i < numMessages; i++ {
		tag, err := r.readByte()
		if err != nil {
			return true
		}
		switch tag {
		case contextMessage:
			// Correct V2 shape: compiler, flags, working directory, output
			// file.
			for _, isList := range []bool{false, true, false, false} {
				id, err := r.readInt()
				if err != nil {
					return true
				}
				if isList {
					if id < 0 || id >= len(f.lists) {
						return true
					}
				} else if id < 0 || id >= len(f.strings) {
					return true
				}
			}
		case fileMessage:
			// Correct V2 shape: source file only.
			id, err := r.readInt()
			if err != nil {
				return true
			}
			if id < 0 || id >= len(f.strings) {
				return true
			}
		default:
			return true
		}
	}
	// A correct V2 stream lands exactly at the end of the section.
	return r.pos != f.messagesEnd
}

// contextInts and fileInts are the number of int32 fields in each message
// shape for this file's version.
func (f *metadataFile) contextInts() int {
	if f.version == 1 {
		return 3
	}
	return 4
}

func (f *metadataFile) fileInts() int {
	if f.version > 2 || f.hasBug {
		return 2
	}
	return 1
}

// countFileMessages walks the message stream counting file messages.  Only
// needed for versions whose header does not record the count.
func (f *metadataFile) countFileMessages() (int, error) {
	r := bufReader{buf: f.buf[:f.messagesEnd], pos: f.commandsOffset}
	numMessages, err := r.readInt()
	if err != nil {
		return 0, corruptError(f.path, err)
	}
	count := 0
	for i := 0; i < numMessages; i++ {
		tag, err := r.readByte()
		if err != nil {
			return 0, corruptError(f.path, err)
		}
		switch tag {
		case contextMessage:
			err = r.skip(4 * f.contextInts())
		case fileMessage:
			count++
			err = r.skip(4 * f.fileInts())
		default:
			err = fmt.Errorf("unknown message tag %#x", tag)
		}
		if err != nil {
			return 0, corruptError(f.path, err)
		}
	}
	return count, nil
}

// string resolves a string id, treating slot 0 as the null string.
func (f *metadataFile) string(id int) (string, error) {
	if id < 0 || id >= len(f.strings) {
		return "", corruptError(f.path, fmt.Errorf("string index %d out of range", id))
	}
	return f.strings[id], nil
}

// requiredString resolves a string id that may not be null.
func (f *metadataFile) requiredString(id int) (string, error) {
	if id == 0 {
		return "", corruptError(f.path, fmt.Errorf("unexpected null string index"))
	}
	return f.string(id)
}

func (f *metadataFile) stringList(id int) ([]string, error) {
	if id < 0 || id >= len(f.lists) {
		return nil, corruptError(f.path, fmt.Errorf("string list index %d out of range", id))
	}
	return f.lists[id], nil
}

// StreamCompileCommands opens the build metadata file at path and invokes fn
// once per file record, in file order.  The *CompileCommand passed to fn is
// reused between invocations; fn must copy it (and its Flags slice) if it
// retains it.  A non-nil error from fn aborts the stream and is returned.
func StreamCompileCommands(path string, fn func(*CompileCommand) error) error {
	f, err := openMetadataFile(path)
	if err != nil {
		return err
	}

	r := bufReader{buf: f.buf[:f.messagesEnd], pos: f.commandsOffset}
	numMessages, err := r.readInt()
	if err != nil {
		return corruptError(path, err)
	}

	var fileCount int
	if f.version > 2 || f.hasBug {
		fileCount, err = r.readInt()
		if err != nil {
			return corruptError(path, err)
		}
	} else {
		// Older files do not record the file message count; derive it.
		fileCount, err = f.countFileMessages()
		if err != nil {
			return err
		}
	}

	command := CompileCommand{
		Target:          FallbackTarget,
		SourceFileCount: fileCount,
	}
	// In correct V2 the output file lives on the context message.
	contextOutputFile := FallbackOutputFile
	fileIndex := 0

	for i := 0; i < numMessages; i++ {
		tag, err := r.readByte()
		if err != nil {
			return corruptError(path, err)
		}
		switch tag {
		case contextMessage:
			id, err := r.readInt()
			if err != nil {
				return corruptError(path, err)
			}
			if command.Compiler, err = f.requiredString(id); err != nil {
				return err
			}
			if id, err = r.readInt(); err != nil {
				return corruptError(path, err)
			}
			if command.Flags, err = f.stringList(id); err != nil {
				return err
			}
			if id, err = r.readInt(); err != nil {
				return corruptError(path, err)
			}
			if command.WorkingDirectory, err = f.requiredString(id); err != nil {
				return err
			}
			switch {
			case f.version > 2 || f.hasBug:
				if id, err = r.readInt(); err != nil {
					return corruptError(path, err)
				}
				if command.Target, err = f.string(id); err != nil {
					return err
				}
			case f.version == 2:
				if id, err = r.readInt(); err != nil {
					return corruptError(path, err)
				}
				if contextOutputFile, err = f.string(id); err != nil {
					return err
				}
			}
		case fileMessage:
			id, err := r.readInt()
			if err != nil {
				return corruptError(path, err)
			}
			if command.SourceFile, err = f.requiredString(id); err != nil {
				return err
			}
			switch {
			case f.version > 2 || f.hasBug:
				if id, err = r.readInt(); err != nil {
					return corruptError(path, err)
				}
				if command.OutputFile, err = f.string(id); err != nil {
					return err
				}
			case f.version == 2:
				command.OutputFile = contextOutputFile
			default:
				command.OutputFile = FallbackOutputFile
			}
			command.SourceFileIndex = fileIndex
			if err := fn(&command); err != nil {
				return err
			}
			fileIndex++
		default:
			return corruptError(path, fmt.Errorf("unknown message tag %#x", tag))
		}
	}
	return nil
}

// ReadCompileCommandsVersionNumber returns the format version recorded in
// the file at path.
func ReadCompileCommandsVersionNumber(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	header := make([]byte, versionOffset+4)
	if _, err := io.ReadFull(file, header); err != nil {
		return 0, fmt.Errorf("%s is not a valid C/C++ build metadata file", path)
	}
	if !bytes.HasPrefix(header, []byte(Magic)) {
		return 0, fmt.Errorf("%s is not a valid C/C++ build metadata file", path)
	}
	return int(int32(byteOrder.Uint32(header[versionOffset:]))), nil
}

// CompileCommandsFileIsCurrentVersion reports whether the file at path was
// written by the current version of the format.
func CompileCommandsFileIsCurrentVersion(path string) (bool, error) {
	version, err := ReadCompileCommandsVersionNumber(path)
	if err != nil {
		return false, err
	}
	return version == CurrentVersion, nil
}
