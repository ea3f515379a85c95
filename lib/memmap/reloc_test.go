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
	"testing"

	"github.com/undersampled/hypearchive/lib/codec"
)

func putRelocU32(dst []byte, v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return append(dst, buf...)
}

// buildRawEnvelope wraps payload in an uncompressed §4.1 envelope, computing
// the checksum the raw-payload path actually verifies against
// (DecompressedChecksum).
func buildRawEnvelope(payload []byte) []byte {
	var b []byte
	b = putRelocU32(b, 0) // is_compressed
	b = putRelocU32(b, uint32(len(payload)))
	b = putRelocU32(b, 0) // compressed_checksum, unused on the raw path
	b = putRelocU32(b, uint32(len(payload)))
	b = putRelocU32(b, codec.Checksum(payload))
	b = append(b, payload...)
	return b
}

func TestParseRelocTableMontreal(tt *testing.T) {
	var entries []byte
	entries = putRelocU32(entries, 0x00100020)
	entries = append(entries, 0x20, 0x02)
	entries = putRelocU32(entries, 0x00100030)
	entries = append(entries, 0x21, 0x03)

	envelope := buildRawEnvelope(entries)

	var body []byte
	body = append(body, 1)          // block_count
	body = append(body, 0x10, 0x01) // source_module, source_id
	body = putRelocU32(body, 2)     // pointer_count
	body = append(body, envelope...)

	table, err := ParseRelocTable(body, RelocVariantMontreal)
	if err != nil {
		tt.Fatalf("ParseRelocTable: %v", err)
	}

	got := table.Entries(Key{Module: 0x10, ID: 0x01})
	if len(got) != 2 {
		tt.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].OffsetInMemory != 0x00100020 || got[0].TargetModule != 0x20 || got[0].TargetID != 0x02 {
		tt.Fatalf("entry 0 = %+v", got[0])
	}
	if got[1].OffsetInMemory != 0x00100030 || got[1].TargetModule != 0x21 || got[1].TargetID != 0x03 {
		tt.Fatalf("entry 1 = %+v", got[1])
	}

	lookup, ok := table.Lookup(0x00100020)
	if !ok || lookup.TargetModule != 0x20 || lookup.TargetID != 0x02 {
		tt.Fatalf("Lookup(0x00100020) = %+v, %v", lookup, ok)
	}
	if _, ok := table.Lookup(0xdeadbeef); ok {
		tt.Fatalf("Lookup of an undeclared offset unexpectedly found an entry")
	}
}

func TestParseRelocTableZeroPointerCount(tt *testing.T) {
	var body []byte
	body = append(body, 1)
	body = append(body, 0x10, 0x01)
	body = putRelocU32(body, 0)

	table, err := ParseRelocTable(body, RelocVariantMontreal)
	if err != nil {
		tt.Fatalf("ParseRelocTable: %v", err)
	}
	if got := table.Entries(Key{Module: 0x10, ID: 0x01}); got != nil {
		tt.Fatalf("got %v, want no entries for a zero-pointer-count block", got)
	}
}

func TestParseRelocTableTruncatedEnvelope(tt *testing.T) {
	var body []byte
	body = append(body, 1)
	body = append(body, 0x10, 0x01)
	body = putRelocU32(body, 1) // declares a pointer but no envelope follows

	table, err := ParseRelocTable(body, RelocVariantMontreal)
	if err != nil {
		tt.Fatalf("ParseRelocTable: %v", err)
	}
	if got := table.Entries(Key{Module: 0x10, ID: 0x01}); got != nil {
		tt.Fatalf("got %v, want no entries (envelope truncated, table stops here)", got)
	}
}

func TestParseRelocTableNilLookup(tt *testing.T) {
	var table *RelocTable
	if _, ok := table.Lookup(0); ok {
		tt.Fatalf("Lookup on a nil table unexpectedly found an entry")
	}
	if got := table.Entries(Key{}); got != nil {
		tt.Fatalf("Entries on a nil table = %v, want nil", got)
	}
}
