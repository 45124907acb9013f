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
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the byte sequence at the start of every build metadata file,
// including the embedded 0x1A (DOS EOF, so accidentally typing the file in a
// terminal stops at the header).
const Magic = "C/C++ Build Metadata\x1a"

// CurrentVersion is the format version written by this package.
//
// Version history:
//
//	1: context messages carry compiler/flags/working directory; file
//	   messages carry only the source file.
//	2: added the output file to the context message.
//	2 (unbumped, "V2 prime"): a later change moved the output file to the
//	   file message, replaced the context message's output file with the
//	   target, and added the file message count to the header, all without
//	   bumping the version number.  Files claiming version 2 can be either
//	   shape; see hasVersionBug.
//	3: identical wire shape to the unbumped version 2, with the version
//	   number correctly bumped.
const CurrentVersion = 3

// Section index type tags.
const (
	sectionStringTable     = 0
	sectionStringLists     = 1
	sectionCompileCommands = 2
)

const numSections = 3

// Message tags within the compile commands section.
const (
	contextMessage = 0x00
	fileMessage    = 0x01
)

// Fixed header offsets.  The header is magic, version, section count, the
// section index, then the compile commands section body which starts with
// the message count (and, from V2-prime on, the file message count).
const (
	versionOffset      = len(Magic)
	numSectionsOffset  = versionOffset + 4
	sectionIndexOffset = numSectionsOffset + 4
	sectionEntrySize   = 4 + 8
	commandsOffset     = sectionIndexOffset + numSections*sectionEntrySize
)

// byteOrder is the byte order of every multi-byte integer in the file.
var byteOrder = binary.BigEndian

// bufReader reads primitives from an in-memory copy of a metadata file.  A
// read past the end returns io.ErrUnexpectedEOF; during normal decoding the
// caller wraps that as a corrupt file error, and during the version 2
// disambiguation probe it is a detection signal instead.
type bufReader struct {
	buf []byte
	pos int
}

func (r *bufReader) readByte() (byte, error) {
	if r.pos+1 > len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *bufReader) readInt() (int, error) {
	if r.pos+4 > len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := int(int32(byteOrder.Uint32(r.buf[r.pos:])))
	r.pos += 4
	return v, nil
}

func (r *bufReader) readLong() (int64, error) {
	if r.pos+8 > len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := int64(byteOrder.Uint64(r.buf[r.pos:]))
	r.pos += 8
	return v, nil
}

// readUTF8 reads a length-prefixed UTF-8 string.
func (r *bufReader) readUTF8() (string, error) {
	n, err := r.readInt()
	if err != nil {
		return "", err
	}
	if n < 0 || r.pos+n > len(r.buf) {
		return "", io.ErrUnexpectedEOF
	}
	s := string(r.buf[r.pos : r.pos+n])
	r.pos += n
	return s, nil
}

// skip advances past n bytes.
func (r *bufReader) skip(n int) error {
	if n < 0 || r.pos+n > len(r.buf) {
		return io.ErrUnexpectedEOF
	}
	r.pos += n
	return nil
}

func corruptError(path string, err error) error {
	return fmt.Errorf("corrupt compile commands file %s: %w", path, err)
}
