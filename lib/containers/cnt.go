// Copyright 2026 The Hype Archive Tools Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// ----------------

// Package containers reads the game's three flat-file archive formats: CNT
// (texture archive), BNM (sound bank), and APM (Ubisoft IMA-ADPCM audio).
//
// Each reader decodes an already-resident []byte rather than streaming, per
// §5 (no external I/O during decoding once the buffer is in hand); callers
// read the file into memory (or via an os.File ReadAt) before calling in.
package containers

import (
	"encoding/binary"
	"errors"

	"github.com/undersampled/hypearchive/lib/codec"
)

// ErrMalformed is returned when a CNT/BNM/APM header contradicts the size
// of the buffer it was decoded from.
var ErrMalformed = errors.New("containers: malformed archive")

// CNTDirectory is one directory-path record from a CNT's directory table.
type CNTDirectory struct {
	Path string
}

// CNTFile is one file entry from a CNT's file table: a texture's raw bytes,
// located by (DirIndex, Name) and still XOR-encrypted with its own 4-byte
// cyclic key until Extract decrypts it.
type CNTFile struct {
	DirIndex uint32
	Name     string
	xorKey   [4]byte
	checksum uint32
	pointer  uint32
	size     uint32
}

// CNTArchive is a fully parsed CNT texture archive.
type CNTArchive struct {
	Directories []CNTDirectory
	Files       []CNTFile

	raw []byte
}

// ParseCNT decodes a CNT archive header, directory table, and file table
// from raw. File payload bytes are not extracted yet — call Extract per
// file, since texture archives commonly hold hundreds of entries and a
// caller may only want a handful.
func ParseCNT(raw []byte) (*CNTArchive, error) {
	if len(raw) < 11 {
		return nil, ErrMalformed
	}
	dirCount := int(int32(binary.LittleEndian.Uint32(raw[0:4])))
	fileCount := int(int32(binary.LittleEndian.Uint32(raw[4:8])))
	isXOR := raw[8] != 0
	isChecksum := raw[9] != 0
	xorKey := raw[10]
	pos := 11

	if dirCount < 0 || fileCount < 0 {
		return nil, ErrMalformed
	}

	a := &CNTArchive{raw: raw}
	var dirBytesSum byte

	for i := 0; i < dirCount; i++ {
		if pos+4 > len(raw) {
			return nil, ErrMalformed
		}
		n := int(binary.LittleEndian.Uint32(raw[pos : pos+4]))
		pos += 4
		if n < 0 || pos+n > len(raw) {
			return nil, ErrMalformed
		}
		dirBytes := raw[pos : pos+n]
		pos += n

		var name []byte
		if isXOR {
			name = codec.StringXOR(dirBytes, xorKey)
		} else {
			name = append([]byte{}, dirBytes...)
		}
		for _, b := range dirBytes {
			dirBytesSum += b
		}
		a.Directories = append(a.Directories, CNTDirectory{Path: string(name)})
	}

	if isChecksum {
		if pos >= len(raw) {
			return nil, ErrMalformed
		}
		if raw[pos] != dirBytesSum {
			return nil, ErrMalformed
		}
		pos++
	}

	for i := 0; i < fileCount; i++ {
		if pos+8 > len(raw) {
			return nil, ErrMalformed
		}
		dirIndex := binary.LittleEndian.Uint32(raw[pos : pos+4])
		nameLen := int(int32(binary.LittleEndian.Uint32(raw[pos+4 : pos+8])))
		pos += 8
		if nameLen < 0 || pos+nameLen > len(raw) {
			return nil, ErrMalformed
		}
		name := string(raw[pos : pos+nameLen])
		pos += nameLen

		if pos+16 > len(raw) {
			return nil, ErrMalformed
		}
		var fileXORKey [4]byte
		copy(fileXORKey[:], raw[pos:pos+4])
		checksum := binary.LittleEndian.Uint32(raw[pos+4 : pos+8])
		pointer := binary.LittleEndian.Uint32(raw[pos+8 : pos+12])
		size := binary.LittleEndian.Uint32(raw[pos+12 : pos+16])
		pos += 16

		a.Files = append(a.Files, CNTFile{
			DirIndex: dirIndex,
			Name:     name,
			xorKey:   fileXORKey,
			checksum: checksum,
			pointer:  pointer,
			size:     size,
		})
	}

	return a, nil
}

// Extract reads and XOR-decrypts f's bytes from the archive's source
// buffer.
func (a *CNTArchive) Extract(f CNTFile) ([]byte, error) {
	end := int64(f.pointer) + int64(f.size)
	if f.pointer > uint32(len(a.raw)) || end > int64(len(a.raw)) {
		return nil, ErrMalformed
	}
	raw := a.raw[f.pointer : uint32(f.pointer)+f.size]
	return codec.CyclicXOR4(raw, f.xorKey), nil
}
