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

// Package script decodes AI Script node arrays embedded in AIModel ->
// Behavior records, reconstructs their indent-encoded tree, and emits an
// S-expression rendering (§4.9).
package script

import (
	"errors"

	"github.com/undersampled/hypearchive/lib/memmap"
)

// ErrMalformed is returned when a script's declared node count contradicts
// the bytes available to it.
var ErrMalformed = errors.New("script: malformed record")

const nodeRecordSize = 8

// Node is one decoded 8-byte script node.
type Node struct {
	Param  uint32
	Indent uint8
	Type   uint8
}

// DecodeNodes reads a Script's {node_count:u32, nodes_ptr} header at addr,
// then node_count 8-byte nodes.
func DecodeNodes(mm *memmap.Context, addr uint32) ([]Node, error) {
	cur, err := mm.At(addr)
	if err != nil {
		return nil, err
	}
	count, err := cur.U32()
	if err != nil {
		return nil, err
	}
	nodesPtr, err := cur.U32()
	if err != nil {
		return nil, err
	}
	if count > 1_000_000 {
		return nil, ErrMalformed
	}

	nodesCur, err := mm.At(nodesPtr)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, count)
	for i := uint32(0); i < count; i++ {
		raw, err := nodesCur.Bytes(nodeRecordSize)
		if err != nil {
			break
		}
		nodes = append(nodes, Node{
			Param:  le32(raw[0:4]),
			Indent: raw[6],
			Type:   raw[7],
		})
	}
	return nodes, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
