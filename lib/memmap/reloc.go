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

package memmap

import (
	"encoding/binary"
	"errors"

	"github.com/undersampled/hypearchive/lib/codec"
)

// RelocEntry is one declaration that the 32-bit word stored at
// OffsetInMemory, inside the source block, is itself a virtual address
// belonging to the (TargetModule, TargetID) block.
type RelocEntry struct {
	SourceModule   uint8
	SourceID       uint8
	OffsetInMemory uint32
	TargetModule   uint8
	TargetID       uint8
}

// RelocTable indexes a decoded relocation table two ways: by source block
// and by the virtual offset a pointer word lives at.
type RelocTable struct {
	bySource map[Key][]RelocEntry
	byOffset map[uint32]RelocEntry
}

// Entries returns every relocation entry declared for the given source
// block, in file order.
func (t *RelocTable) Entries(source Key) []RelocEntry {
	if t == nil {
		return nil
	}
	return t.bySource[source]
}

// Lookup returns the relocation entry (if any) whose OffsetInMemory equals
// offset, across every source block.
func (t *RelocTable) Lookup(offset uint32) (RelocEntry, bool) {
	if t == nil {
		return RelocEntry{}, false
	}
	e, ok := t.byOffset[offset]
	return e, ok
}

// RelocVariant distinguishes the Montreal pointer-block layout (6 bytes per
// entry) from the non-Montreal variants that append two extra tag bytes per
// entry (§4.3). Only RelocVariantMontreal is exercised end to end; the other
// variants are Non-goals (§1, §9 Open Question 3) but the parser is already
// parameterised so adding one is a one-line change at the call site.
type RelocVariant int

const (
	RelocVariantMontreal RelocVariant = iota
	RelocVariantTagged
)

const montrealEntrySize = 6 // offset_in_memory:u32, target_module:u8, target_id:u8
const taggedEntrySize = montrealEntrySize + 2

// ParseRelocTable decodes one RTB/RTP/RTT/RTD/RTG/RTS/RTV table from body
// (already outer-unmasked, if that file applies an outer mask) according to
// variant.
func ParseRelocTable(body []byte, variant RelocVariant) (*RelocTable, error) {
	pos := 0
	if pos >= len(body) {
		return nil, malformedReloc("memmap.ParseRelocTable")
	}
	blockCount := int(body[pos])
	pos++
	if variant == RelocVariantTagged {
		// Post-Montreal variants add an ignored u32 after block_count.
		if pos+4 > len(body) {
			return nil, malformedReloc("memmap.ParseRelocTable")
		}
		pos += 4
	}

	t := &RelocTable{
		bySource: make(map[Key][]RelocEntry, blockCount),
		byOffset: make(map[uint32]RelocEntry),
	}

	entrySize := montrealEntrySize
	if variant == RelocVariantTagged {
		entrySize = taggedEntrySize
	}

	for b := 0; b < blockCount; b++ {
		if pos+6 > len(body) {
			return t, nil // truncate: keep blocks parsed so far.
		}
		sourceModule := body[pos]
		sourceID := body[pos+1]
		pointerCount := binary.LittleEndian.Uint32(body[pos+2 : pos+6])
		pos += 6

		if pointerCount == 0 {
			continue
		}

		payload, consumed, err := codec.DecodeEnvelope(body[pos:])
		if err != nil {
			// Bad checksum: this pointer block's entries are dropped, but
			// parsing continues with the next pointer block only if we can
			// still locate it — without a valid envelope we cannot know
			// its length, so the table is truncated here.
			return t, nil
		}
		pos += consumed

		key := Key{sourceModule, sourceID}
		entries := make([]RelocEntry, 0, pointerCount)
		for i := uint32(0); i < pointerCount; i++ {
			off := int(i) * entrySize
			if off+entrySize > len(payload) {
				break
			}
			e := RelocEntry{
				SourceModule:   sourceModule,
				SourceID:       sourceID,
				OffsetInMemory: binary.LittleEndian.Uint32(payload[off : off+4]),
				TargetModule:   payload[off+4],
				TargetID:       payload[off+5],
			}
			entries = append(entries, e)
			t.byOffset[e.OffsetInMemory] = e
		}
		t.bySource[key] = entries
	}

	return t, nil
}

func malformedReloc(op string) error {
	return errors.New(op + ": malformed relocation table header")
}
