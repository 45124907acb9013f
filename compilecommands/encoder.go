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
	"os"
)

// Size of the in-memory write window.  Message writes are buffered here and
// flushed to disk when the window fills, so peak memory is one window plus
// the intern tables.
const writeWindowSize = 4096

// Encoder writes compile command records to a build metadata file.  It holds
// an exclusive lock on the destination from construction until Close, and
// the file is not readable until Close succeeds: section offsets and message
// counts are only patched into the header at close time.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	path string
	file *os.File

	// Buffered write window for the message stream.
	window    []byte
	windowLen int
	fileOff   int64

	// Intern tables, written out as the string table and string list
	// sections at close time.  String ids are 1-based, 0 meaning null;
	// string list ids are 0-based.
	stringIDs   map[string]int
	strings     []string
	listIDs     map[string]int
	stringLists [][]int

	// The last written context.  A context message is only emitted when a
	// record's context differs from this.
	lastCompiler   int
	lastFlags      int
	lastWorkingDir int
	lastTarget     int

	numMessages     int
	numFileMessages int
}

// NewEncoder opens path for writing and writes the file header.  It takes an
// exclusive advisory lock on the file and fails immediately, without
// blocking, if another process holds it.
func NewEncoder(path string) (*Encoder, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	// Lock before truncating so a concurrent writer's file is never
	// clobbered.
	if err := lockFile(file); err != nil {
		file.Close()
		return nil, err
	}
	if err := file.Truncate(0); err != nil {
		unlockFile(file)
		file.Close()
		return nil, fmt.Errorf("failed to truncate %s: %w", path, err)
	}

	e := &Encoder{
		path:      path,
		file:      file,
		window:    make([]byte, writeWindowSize),
		stringIDs: make(map[string]int),
		listIDs:   make(map[string]int),
		// No context has been written yet.  String ids are never 0 and
		// list ids are never negative, so the first record always emits a
		// context message.
		lastFlags: -1,
	}

	if err := e.writeHeader(); err != nil {
		unlockFile(file)
		file.Close()
		return nil, err
	}
	return e, nil
}

// writeHeader writes the magic, version, and section index with placeholder
// offsets, plus placeholder message counts.  The placeholders are patched by
// Close.
func (e *Encoder) writeHeader() error {
	if err := e.writeBytes([]byte(Magic)); err != nil {
		return err
	}
	if err := e.writeInt(CurrentVersion); err != nil {
		return err
	}
	if err := e.writeInt(numSections); err != nil {
		return err
	}
	for _, section := range []int{sectionCompileCommands, sectionStringTable, sectionStringLists} {
		if err := e.writeInt(section); err != nil {
			return err
		}
		if err := e.writeLong(0); err != nil {
			return err
		}
	}
	// Message count and file message count.
	if err := e.writeInt(0); err != nil {
		return err
	}
	return e.writeInt(0)
}

// WriteCompileCommand appends one compile command record.  Records sharing
// the same compiler, flags, working directory and target as the previous
// record cost a single small file message; a change in any of those fields
// emits a new context message first.
func (e *Encoder) WriteCompileCommand(sourceFile, compiler string, flags []string, workingDirectory, outputFile, target string) error {
	if e.file == nil {
		return fmt.Errorf("compile commands encoder for %s is closed", e.path)
	}

	compilerID := e.internString(compiler)
	flagsID := e.internStringList(flags)
	workingDirID := e.internString(workingDirectory)
	targetID := e.internString(target)

	if compilerID != e.lastCompiler || flagsID != e.lastFlags ||
		workingDirID != e.lastWorkingDir || targetID != e.lastTarget {
		if err := e.writeByte(contextMessage); err != nil {
			return err
		}
		for _, id := range []int{compilerID, flagsID, workingDirID, targetID} {
			if err := e.writeInt(id); err != nil {
				return err
			}
		}
		e.lastCompiler = compilerID
		e.lastFlags = flagsID
		e.lastWorkingDir = workingDirID
		e.lastTarget = targetID
		e.numMessages++
	}

	if err := e.writeByte(fileMessage); err != nil {
		return err
	}
	if err := e.writeInt(e.internString(sourceFile)); err != nil {
		return err
	}
	if err := e.writeInt(e.internString(outputFile)); err != nil {
		return err
	}
	e.numMessages++
	e.numFileMessages++
	return nil
}

// Close writes the string table and string list sections, patches the
// section index and message counts, and forces everything to disk before
// releasing the lock.  A failure at any step leaves the file unreadable;
// callers must treat it as fatal and regenerate the file from scratch.
func (e *Encoder) Close() error {
	if e.file == nil {
		return fmt.Errorf("compile commands encoder for %s is closed", e.path)
	}

	if err := e.flushWindow(); err != nil {
		return err
	}

	// The section bodies and header patches below bypass the write window;
	// they are positioned writes against known offsets.
	stringTableOffset := e.fileOff

	var table bytes.Buffer
	putInt(&table, len(e.strings))
	for _, s := range e.strings {
		putInt(&table, len(s))
		table.WriteString(s)
	}
	if err := e.writeAt(table.Bytes(), stringTableOffset); err != nil {
		return err
	}

	stringListsOffset := stringTableOffset + int64(table.Len())

	var lists bytes.Buffer
	putInt(&lists, len(e.stringLists))
	for _, list := range e.stringLists {
		putInt(&lists, len(list))
		for _, id := range list {
			putInt(&lists, id)
		}
	}
	if err := e.writeAt(lists.Bytes(), stringListsOffset); err != nil {
		return err
	}

	var counts bytes.Buffer
	putInt(&counts, e.numMessages)
	putInt(&counts, e.numFileMessages)
	if err := e.writeAt(counts.Bytes(), int64(commandsOffset)); err != nil {
		return err
	}

	var index bytes.Buffer
	for _, section := range []struct {
		section int
		offset  int64
	}{
		{sectionCompileCommands, int64(commandsOffset)},
		{sectionStringTable, stringTableOffset},
		{sectionStringLists, stringListsOffset},
	} {
		putInt(&index, section.section)
		putLong(&index, section.offset)
	}
	if err := e.writeAt(index.Bytes(), int64(sectionIndexOffset)); err != nil {
		return err
	}

	if err := e.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", e.path, err)
	}
	if err := unlockFile(e.file); err != nil {
		return err
	}
	err := e.file.Close()
	e.file = nil
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", e.path, err)
	}
	return nil
}

// internString returns the 1-based id for s, assigning the next id if s has
// not been seen before.  Id 0 is reserved for null.
func (e *Encoder) internString(s string) int {
	if id, ok := e.stringIDs[s]; ok {
		return id
	}
	id := len(e.strings) + 1
	e.stringIDs[s] = id
	e.strings = append(e.strings, s)
	return id
}

// internStringList returns the 0-based id for the list of interned string
// ids corresponding to list.
func (e *Encoder) internStringList(list []string) int {
	ids := make([]int, len(list))
	for i, s := range list {
		ids[i] = e.internString(s)
	}
	key := listKey(ids)
	if id, ok := e.listIDs[key]; ok {
		return id
	}
	id := len(e.stringLists)
	e.listIDs[key] = id
	e.stringLists = append(e.stringLists, ids)
	return id
}

// listKey packs interned string ids into a string usable as a map key.
func listKey(ids []int) string {
	var key bytes.Buffer
	for _, id := range ids {
		putInt(&key, id)
	}
	return key.String()
}

// ensure makes room for an n byte write in the window, flushing it if full
// and growing it if a flushed window still cannot hold n bytes.
func (e *Encoder) ensure(n int) error {
	if e.windowLen+n <= len(e.window) {
		return nil
	}
	if err := e.flushWindow(); err != nil {
		return err
	}
	if n > len(e.window) {
		e.window = make([]byte, n)
	}
	return nil
}

func (e *Encoder) flushWindow() error {
	if e.windowLen == 0 {
		return nil
	}
	if err := e.writeAt(e.window[:e.windowLen], e.fileOff); err != nil {
		return err
	}
	e.fileOff += int64(e.windowLen)
	e.windowLen = 0
	return nil
}

func (e *Encoder) writeAt(p []byte, off int64) error {
	if _, err := e.file.WriteAt(p, off); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.path, err)
	}
	return nil
}

func (e *Encoder) writeByte(b byte) error {
	if err := e.ensure(1); err != nil {
		return err
	}
	e.window[e.windowLen] = b
	e.windowLen++
	return nil
}

func (e *Encoder) writeInt(v int) error {
	if err := e.ensure(4); err != nil {
		return err
	}
	byteOrder.PutUint32(e.window[e.windowLen:], uint32(int32(v)))
	e.windowLen += 4
	return nil
}

func (e *Encoder) writeLong(v int64) error {
	if err := e.ensure(8); err != nil {
		return err
	}
	byteOrder.PutUint64(e.window[e.windowLen:], uint64(v))
	e.windowLen += 8
	return nil
}

func (e *Encoder) writeBytes(p []byte) error {
	if err := e.ensure(len(p)); err != nil {
		return err
	}
	copy(e.window[e.windowLen:], p)
	e.windowLen += len(p)
	return nil
}

func putInt(buf *bytes.Buffer, v int) {
	var b [4]byte
	byteOrder.PutUint32(b[:], uint32(int32(v)))
	buf.Write(b[:])
}

func putLong(buf *bytes.Buffer, v int64) {
	var b [8]byte
	byteOrder.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}
