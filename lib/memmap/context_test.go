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

import "testing"

// TestPointerResolution is scenario (e): two synthetic blocks and one
// relocation entry; FollowPointer must return the stored pointer value, and
// Locate must resolve it into the target block at the right offset.
func TestPointerResolution(tt *testing.T) {
	payloadA := make([]byte, 0x30)
	// +0x20 holds the little-endian u32 0x00200008.
	payloadA[0x20] = 0x08
	payloadA[0x21] = 0x00
	payloadA[0x22] = 0x20
	payloadA[0x23] = 0x00

	blockA := Block{Module: 0x10, ID: 0x01, BaseInMemory: 0x00100000, Payload: payloadA}
	blockB := Block{Module: 0x20, ID: 0x02, BaseInMemory: 0x00200000, Payload: make([]byte, 16)}

	reloc := &RelocTable{
		bySource: map[Key][]RelocEntry{
			{0x10, 0x01}: {{SourceModule: 0x10, SourceID: 0x01, OffsetInMemory: 0x00100020, TargetModule: 0x20, TargetID: 0x02}},
		},
		byOffset: map[uint32]RelocEntry{
			0x00100020: {SourceModule: 0x10, SourceID: 0x01, OffsetInMemory: 0x00100020, TargetModule: 0x20, TargetID: 0x02},
		},
	}

	ctx := NewContext([]Block{blockA, blockB}, reloc)

	got, err := ctx.FollowPointer(0x00100020)
	if err != nil {
		tt.Fatalf("FollowPointer: %v", err)
	}
	if got != 0x00200008 {
		tt.Fatalf("FollowPointer = %#x, want 0x200008", got)
	}

	b, off, err := ctx.Locate(got)
	if err != nil {
		tt.Fatalf("Locate: %v", err)
	}
	if b.Module != 0x20 || b.ID != 0x02 {
		tt.Fatalf("Locate resolved to block (%#x,%#x), want (0x20,0x02)", b.Module, b.ID)
	}
	if off != 8 {
		tt.Fatalf("Locate offset = %d, want 8", off)
	}
}

func TestLocateUnmapped(tt *testing.T) {
	ctx := NewContext([]Block{{Module: 1, ID: 1, BaseInMemory: 0x1000, Payload: make([]byte, 16)}}, nil)
	if _, _, err := ctx.Locate(0x2000); err != ErrUnmapped {
		tt.Fatalf("got %v, want ErrUnmapped", err)
	}
	if _, _, err := ctx.Locate(0x0FFF); err != ErrUnmapped {
		tt.Fatalf("got %v, want ErrUnmapped", err)
	}
	if _, off, err := ctx.Locate(0x1000); err != nil || off != 0 {
		tt.Fatalf("got off=%d err=%v, want off=0 err=nil", off, err)
	}
}

func TestFollowPointerScanMode(tt *testing.T) {
	payload := make([]byte, 8)
	payload[0], payload[1], payload[2], payload[3] = 0x00, 0x10, 0x00, 0x00 // 0x1000
	blockA := Block{Module: 1, ID: 1, BaseInMemory: 0x2000, Payload: payload}
	blockB := Block{Module: 1, ID: 2, BaseInMemory: 0x1000, Payload: make([]byte, 16)}

	ctx := NewContext([]Block{blockA, blockB}, nil)
	got, err := ctx.FollowPointer(0x2000)
	if err != nil {
		tt.Fatalf("FollowPointer: %v", err)
	}
	if got != 0x1000 {
		tt.Fatalf("got %#x, want 0x1000", got)
	}
}

func TestFollowPointerNonPointer(tt *testing.T) {
	payload := make([]byte, 8) // all zero: 0 does not resolve to a mapped address.
	blockA := Block{Module: 1, ID: 1, BaseInMemory: 0x2000, Payload: payload}
	ctx := NewContext([]Block{blockA}, nil)
	if _, err := ctx.FollowPointer(0x2000); err != ErrNonPointer {
		tt.Fatalf("got %v, want ErrNonPointer", err)
	}
}

func TestCursorPrimitives(tt *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFF}
	block := Block{Module: 1, ID: 1, BaseInMemory: 0x1000, Payload: payload}
	ctx := NewContext([]Block{block}, nil)

	cur, err := ctx.At(0x1000)
	if err != nil {
		tt.Fatalf("At: %v", err)
	}
	u32, err := cur.U32()
	if err != nil {
		tt.Fatalf("U32: %v", err)
	}
	if u32 != 0x04030201 {
		tt.Fatalf("U32 = %#x, want 0x04030201", u32)
	}
	i16, err := cur.I16()
	if err != nil {
		tt.Fatalf("I16: %v", err)
	}
	if i16 != -1 {
		tt.Fatalf("I16 = %d, want -1", i16)
	}
	if _, err := cur.U8(); err != ErrCrossesBoundary {
		tt.Fatalf("got %v, want ErrCrossesBoundary", err)
	}
}
