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

package script

import (
	"encoding/binary"
	"testing"

	"github.com/undersampled/hypearchive/lib/memmap"
)

func putU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// buildScript assembles a {node_count, nodes_ptr} header followed by one
// 8-byte record per (param, indent, typ) triple.
func buildScript(base uint32, records [][3]uint32) *memmap.Context {
	nodesAddr := base + 8
	payload := make([]byte, 8+len(records)*nodeRecordSize)
	putU32(payload, 0, uint32(len(records)))
	putU32(payload, 4, nodesAddr)

	for i, r := range records {
		off := 8 + i*nodeRecordSize
		putU32(payload, off, r[0])
		payload[off+6] = byte(r[1])
		payload[off+7] = byte(r[2])
	}

	block := memmap.Block{Module: 6, ID: 1, BaseInMemory: int32(base), Payload: payload}
	return memmap.NewContext([]memmap.Block{block}, nil)
}

func TestDecodeNodes(t *testing.T) {
	const base = 0x00900000
	mm := buildScript(base, [][3]uint32{
		{0x1234, 1, 5},
		{0x5678, 0, 9},
	})

	nodes, err := DecodeNodes(mm, base)
	if err != nil {
		t.Fatalf("DecodeNodes: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Param != 0x1234 || nodes[0].Indent != 1 || nodes[0].Type != 5 {
		t.Fatalf("nodes[0] = %+v, unexpected", nodes[0])
	}
	if nodes[1].Param != 0x5678 || nodes[1].Indent != 0 || nodes[1].Type != 9 {
		t.Fatalf("nodes[1] = %+v, unexpected", nodes[1])
	}
}

func TestDecodeNodesUnreasonableCount(t *testing.T) {
	const base = 0x00A00000
	payload := make([]byte, 8)
	putU32(payload, 0, 2_000_000)
	putU32(payload, 4, base+8)
	block := memmap.Block{Module: 6, ID: 2, BaseInMemory: base, Payload: payload}
	mm := memmap.NewContext([]memmap.Block{block}, nil)

	if _, err := DecodeNodes(mm, base); err != ErrMalformed {
		t.Fatalf("got %v, want ErrMalformed", err)
	}
}
