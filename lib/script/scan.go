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

import "github.com/undersampled/hypearchive/lib/memmap"

// ScanCandidate is one script discovered by ScanBlock without
// behavior-table guidance.
type ScanCandidate struct {
	Addr  uint32
	Nodes []Node
}

// ScanBlock enumerates every 4-byte-aligned offset within the block keyed
// by blockKey, decoding a Script header and filtering by the same two
// structural properties a behavior-table-guided walk already requires
// (§4.9's "Validation / heuristic scanning"): final indent 0, and every
// indent at most one greater than its predecessor. Table, if non-empty,
// additionally rejects any candidate with an unresolved type byte.
func ScanBlock(mm *memmap.Context, blockKey memmap.Key, table TypeTable) ([]ScanCandidate, error) {
	block, ok := mm.Block(blockKey)
	if !ok {
		return nil, memmap.ErrUnmapped
	}

	var candidates []ScanCandidate
	base := uint32(block.BaseInMemory)
	for off := 0; off+4 <= len(block.Payload); off += 4 {
		addr := base + uint32(off)
		nodes, err := DecodeNodes(mm, addr)
		if err != nil || len(nodes) == 0 {
			continue
		}
		if !ValidateScript(nodes, table) {
			continue
		}
		candidates = append(candidates, ScanCandidate{Addr: addr, Nodes: nodes})
	}
	return candidates, nil
}
