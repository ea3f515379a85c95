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

package geometry

import "github.com/undersampled/hypearchive/lib/memmap"

// ScanCandidate is a GeometricObject offset that survived every §4.7 scan
// filter.
type ScanCandidate struct {
	Addr   uint32
	Object *Object
}

// ScanBlock enumerates every 4-byte-aligned offset within block as a
// candidate GeometricObject header address and keeps the ones surviving
// all five §4.7 scan-mode filters. Used when the relocation table does not
// cover a block that (by other evidence) contains geometry.
func ScanBlock(mm *memmap.Context, blockKey memmap.Key) ([]ScanCandidate, error) {
	block, ok := mm.Block(blockKey)
	if !ok {
		return nil, memmap.ErrUnmapped
	}

	var candidates []ScanCandidate
	base := uint32(block.BaseInMemory)
	end := base + uint32(len(block.Payload))
	for addr := base; addr+geometricObjectHeaderSize <= end; addr += 4 {
		obj, err := Decode(mm, addr)
		if err != nil {
			continue
		}
		if !passesScanFilters(obj) {
			continue
		}
		candidates = append(candidates, ScanCandidate{Addr: addr, Object: obj})
	}
	return candidates, nil
}

// passesScanFilters applies the five §4.7 acceptance conditions. Decode
// having succeeded already establishes filter (a) (the declared pointers
// resolved); the remaining four are checked here.
func passesScanFilters(obj *Object) bool {
	numVertices := len(obj.Vertices)
	if numVertices < 3 || numVertices > 10000 {
		return false // (b)
	}
	if len(obj.Elements) < 1 || len(obj.Elements) > 1000 {
		return false // (c)
	}

	const bound = 1e5
	minX, minY, minZ := float32(bound), float32(bound), float32(bound)
	maxX, maxY, maxZ := float32(-bound), float32(-bound), float32(-bound)
	for _, v := range obj.Vertices {
		if !isFinite(v.X) || !isFinite(v.Y) || !isFinite(v.Z) {
			return false // (d)
		}
		if v.X < -bound || v.X > bound || v.Y < -bound || v.Y > bound || v.Z < -bound || v.Z > bound {
			return false // (d)
		}
		minX, maxX = minOf(minX, v.X), maxOf(maxX, v.X)
		minY, maxY = minOf(minY, v.Y), maxOf(maxY, v.Y)
		minZ, maxZ = minOf(minZ, v.Z), maxOf(maxZ, v.Z)
	}

	const minSpan = 0.01
	if (maxX-minX) < minSpan && (maxY-minY) < minSpan && (maxZ-minZ) < minSpan {
		return false // (e)
	}
	return true
}

func isFinite(f float32) bool {
	return f == f && f > -1e38 && f < 1e38 // NaN != NaN; ±Inf exceed these bounds.
}

func minOf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
