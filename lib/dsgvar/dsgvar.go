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

// Package dsgvar decodes a Perso's DsgVar table: the per-object typed
// value slots AI scripts reference as dsgvar_N (§4.9). This is read-only
// metadata about declared types, not a runtime — no value is evaluated
// or mutated here, consistent with spec.md's Non-goal excluding an AI
// interpreter.
package dsgvar

import (
	"encoding/binary"
	"errors"
)

// Type is a DsgVar's declared storage type.
type Type uint8

const (
	TypeInt Type = iota
	TypeFloat
	TypeBool
	TypeString
)

// ErrMalformed is returned when a DsgVar table's declared count
// contradicts the bytes available to it.
var ErrMalformed = errors.New("dsgvar: malformed table")

const entrySize = 8

// Entry is one declared DsgVar slot: its type tag and its raw 32-bit
// value, whose interpretation depends on Type (int: as-is; float: bit
// reinterpretation; bool: nonzero; string: an id into an LNG Table, the
// same indexing an AI script's text_N param uses).
type Entry struct {
	Type  Type
	Value uint32
}

// Table is a Perso's decoded DsgVar table, indexable by the id a
// script's dsgvar_N param names.
type Table struct {
	Entries []Entry
}

// At returns the entry for id, or a zero Entry with ok == false if id is
// out of range.
func (t Table) At(id uint32) (Entry, bool) {
	if int(id) >= len(t.Entries) {
		return Entry{}, false
	}
	return t.Entries[id], true
}

// Decode reads a {count:u32} header followed by count 8-byte
// {type:u8, _pad[3], value:u32} entries from raw.
func Decode(raw []byte) (*Table, error) {
	if len(raw) < 4 {
		return nil, ErrMalformed
	}
	count := binary.LittleEndian.Uint32(raw[0:4])
	need := 4 + int(count)*entrySize
	if need > len(raw) {
		return nil, ErrMalformed
	}

	entries := make([]Entry, count)
	for i := uint32(0); i < count; i++ {
		off := 4 + int(i)*entrySize
		entries[i] = Entry{
			Type:  Type(raw[off]),
			Value: binary.LittleEndian.Uint32(raw[off+4 : off+8]),
		}
	}
	return &Table{Entries: entries}, nil
}
