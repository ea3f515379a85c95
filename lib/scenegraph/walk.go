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

package scenegraph

import (
	"github.com/undersampled/hypearchive/lib/memmap"
)

// superObjectRecordSize is the byte size of one SuperObject record (§4.6).
const superObjectRecordSize = 0x38

// Graph is an arena of Node records (§9 "Cyclic parent/child pointers":
// "Use an arena... all 'parent', 'child-head', 'sibling-next' fields
// become indices into that vector"). Roots holds the arena index of each
// GPT entry point that resolved successfully.
type Graph struct {
	Nodes []Node
	Roots []int
}

// Walk decodes the SuperObject graphs reachable from each of gpt's three
// entry points into one shared arena. An address that fails to resolve
// (§7 UnmappedAddress) is skipped for that root only; the rest of the walk
// continues. A per-address visited set guards against cyclic or
// self-referential graphs (§9).
func Walk(mm *memmap.Context, gpt GPT) (*Graph, error) {
	g := &Graph{}
	visited := make(map[uint32]int) // address -> arena index, for cycle/sharing detection.

	for _, root := range gpt.Roots() {
		if root == 0 {
			continue
		}
		idx, err := decodeSuperObject(mm, root, NoIndex, visited, g)
		if err != nil {
			continue // UnmappedAddress/malformed root: skip, keep walking other roots.
		}
		g.Roots = append(g.Roots, idx)
	}
	return g, nil
}

// decodeSuperObject decodes the SuperObject at addr (and its children,
// recursively) into g's arena, returning its arena index. visited maps
// addresses already decoded to their arena index so a node reachable from
// more than one parent is decoded once and shared, and so a cyclic graph
// terminates.
func decodeSuperObject(mm *memmap.Context, addr uint32, parent int, visited map[uint32]int, g *Graph) (int, error) {
	if idx, ok := visited[addr]; ok {
		return idx, nil
	}

	cur, err := mm.At(addr)
	if err != nil {
		return NoIndex, err
	}
	raw, err := cur.Bytes(superObjectRecordSize)
	if err != nil {
		return NoIndex, err
	}

	n := Node{
		Type:               TypeCode(le32(raw[0x00:])),
		DataAddr:           le32(raw[0x04:]),
		ChildHead:          NoIndex,
		ChildTail:          NoIndex,
		ChildCount:         int(le32(raw[0x10:])),
		SiblingNext:        NoIndex,
		SiblingPrev:        NoIndex,
		Parent:             parent,
		MatrixAddr:         le32(raw[0x20:]),
		StaticMatrixAddr:   le32(raw[0x24:]),
		DrawFlags:          le32(raw[0x2C:]),
		Flags:              le32(raw[0x30:]),
		BoundingVolumeAddr: le32(raw[0x34:]),
	}
	// children_tail (+0x0C) is not retained: ChildTail is derived below from
	// the decoded sibling chain, which is authoritative even when the
	// on-disk tail pointer and an early-terminated chain disagree.
	childHeadAddr := le32(raw[0x08:])

	idx := len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
	visited[addr] = idx

	if childHeadAddr != 0 {
		children, err := decodeSiblingChain(mm, childHeadAddr, idx, visited, g)
		if err == nil {
			g.Nodes[idx].Children = children
			if len(children) > 0 {
				g.Nodes[idx].ChildHead = children[0]
				g.Nodes[idx].ChildTail = children[len(children)-1]
			}
			for i, c := range children {
				if i > 0 {
					g.Nodes[c].SiblingPrev = children[i-1]
				}
				if i+1 < len(children) {
					g.Nodes[c].SiblingNext = children[i+1]
				}
			}
		}
	}

	return idx, nil
}

// decodeSiblingChain walks a children_head -> sibling_next linked list,
// decoding each sibling (and its own children) in turn. §3 requires that
// walking brother_next from the list head reaches exactly children_count
// nodes; this function does not itself enforce that count (the caller can
// compare len(children) against the parent's ChildCount), since a node
// that stops early due to an unmapped sibling address should still return
// the siblings successfully decoded so far rather than discard them.
func decodeSiblingChain(mm *memmap.Context, head uint32, parent int, visited map[uint32]int, g *Graph) ([]int, error) {
	var indices []int
	addr := head
	for addr != 0 {
		if _, loop := visited[addr]; loop {
			break // revisit guard: a malformed sibling chain pointing back into itself stops here.
		}
		idx, err := decodeSuperObject(mm, addr, parent, visited, g)
		if err != nil {
			break
		}
		indices = append(indices, idx)

		cur, err := mm.At(addr)
		if err != nil {
			break
		}
		raw, err := cur.Bytes(superObjectRecordSize)
		if err != nil {
			break
		}
		next := le32(raw[0x14:])
		if next == addr {
			break
		}
		addr = next
	}
	return indices, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
