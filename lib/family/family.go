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

// Package family decodes Family/State/ObjectList records and the
// AnimationMontreal skeletal animation format (§4.8).
package family

import (
	"errors"

	"github.com/undersampled/hypearchive/lib/memmap"
)

// ErrMalformed is returned when a record's declared shape contradicts the
// bytes available to it.
var ErrMalformed = errors.New("family: malformed record")

// ObjectListEntry is one mesh-part slot: a physical object resolving
// (through VisualSet/LOD, §4.6) to a GeometricObject.
type ObjectListEntry struct {
	ScalePtr          uint32
	PhysicalObjectPtr uint32
}

// ObjectList is one array of ObjectListEntry belonging to a Family.
type ObjectList struct {
	Entries []ObjectListEntry
}

// Family is a character's shared graphics template: one or more
// ObjectLists, each a candidate set of mesh parts.
type Family struct {
	ObjectLists []ObjectList
}

const objectListEntrySize = 8

// DecodeFamily walks a Family's object_lists linked list starting at
// headAddr. Each list node is assumed to carry {next_ptr:u32,
// entry_count:u32, entries_ptr:u32} followed by entry_count entries of
// {scale_ptr:u32, physical_object_ptr:u32}; §4.8 describes the entry shape
// but not the list node's own framing, so this decoder uses the same
// next-pointer-terminated-by-zero idiom the rest of the format uses for
// linked lists (e.g. SuperObject's sibling chain).
func DecodeFamily(mm *memmap.Context, headAddr uint32) (*Family, error) {
	var f Family
	addr := headAddr
	seen := make(map[uint32]bool)
	for addr != 0 && !seen[addr] {
		seen[addr] = true
		list, next, err := decodeObjectListNode(mm, addr)
		if err != nil {
			break
		}
		f.ObjectLists = append(f.ObjectLists, list)
		addr = next
	}
	return &f, nil
}

func decodeObjectListNode(mm *memmap.Context, addr uint32) (ObjectList, uint32, error) {
	cur, err := mm.At(addr)
	if err != nil {
		return ObjectList{}, 0, err
	}
	next, err := cur.U32()
	if err != nil {
		return ObjectList{}, 0, err
	}
	count, err := cur.U32()
	if err != nil {
		return ObjectList{}, 0, err
	}
	entriesPtr, err := cur.U32()
	if err != nil {
		return ObjectList{}, 0, err
	}
	if count > 10000 {
		return ObjectList{}, 0, ErrMalformed
	}

	entriesCur, err := mm.At(entriesPtr)
	if err != nil {
		return ObjectList{}, 0, err
	}
	entries := make([]ObjectListEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		raw, err := entriesCur.Bytes(objectListEntrySize)
		if err != nil {
			break
		}
		entries = append(entries, ObjectListEntry{
			ScalePtr:          le32(raw[0:4]),
			PhysicalObjectPtr: le32(raw[4:8]),
		})
	}
	return ObjectList{Entries: entries}, next, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
