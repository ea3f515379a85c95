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

import (
	"math"

	"github.com/undersampled/hypearchive/lib/memmap"
)

// elementTypeSentinel terminates the element_types array. The format gives
// no explicit element count (§4.7 lists the header's pointer fields but no
// num_elements), so this decoder treats the array as terminated by the
// sentinel value 0xFFFF, matching the sentinel-terminated-table idiom the
// rest of the format uses (the SNA block table's base==-1 terminator).
const elementTypeSentinel = 0xFFFF

// maxElements bounds the element_types scan against a corrupt or
// misidentified pointer running away indefinitely.
const maxElements = 100_000

const triangleElementRecordSize = 40

// Triangle is one decoded triangle: vertex indices and, when a UV map is
// present, one UV coordinate per corner.
type Triangle struct {
	Indices [3]uint16
	UVs     [3][2]float32 // valid only when the element's HasUVs is true.
}

// TriangleElement is one decoded triangle submesh (element_types entry ==
// 1) plus its resolved material.
type TriangleElement struct {
	Triangles []Triangle
	HasUVs    bool
	Material  *ResolvedMaterial // nil if the material pointer did not resolve.
}

// decodeElements walks the element_types array from elementTypesAddr,
// decoding each triangle-typed entry (element_types[i] == 1) using the
// pointer at elementsAddr[i].
func decodeElements(mm *memmap.Context, elementTypesAddr, elementsAddr uint32, numVertices int, materialsAddr uint32) ([]TriangleElement, error) {
	if elementTypesAddr == 0 || elementsAddr == 0 {
		return nil, nil
	}

	typesCur, err := mm.At(elementTypesAddr)
	if err != nil {
		return nil, err
	}
	ptrsCur, err := mm.At(elementsAddr)
	if err != nil {
		return nil, err
	}

	var elements []TriangleElement
	for i := 0; i < maxElements; i++ {
		typeRaw, err := typesCur.Bytes(2)
		if err != nil {
			break
		}
		elemType := le16(typeRaw)
		if elemType == elementTypeSentinel {
			break
		}

		ptrRaw, err := ptrsCur.Bytes(4)
		if err != nil {
			break
		}
		elemAddr := le32(ptrRaw)

		if elemType != triangleElementType || elemAddr == 0 {
			continue
		}

		elem, err := decodeTriangleElement(mm, elemAddr, numVertices, materialsAddr)
		if err != nil {
			continue // §7 InvariantViolation/UnmappedAddress: skip this element, keep the rest.
		}
		elements = append(elements, elem)
	}
	return elements, nil
}

func decodeTriangleElement(mm *memmap.Context, addr uint32, numVertices int, materialsAddr uint32) (TriangleElement, error) {
	cur, err := mm.At(addr)
	if err != nil {
		return TriangleElement{}, err
	}
	hdr, err := cur.Bytes(triangleElementRecordSize)
	if err != nil {
		return TriangleElement{}, err
	}

	materialPtr := le32(hdr[0x00:])
	numTri := le16(hdr[0x04:])
	numUV := le16(hdr[0x06:])
	triPtr := le32(hdr[0x08:])
	uvMapPtr := le32(hdr[0x0C:])
	_ = le32(hdr[0x10:]) // normals_ptr: per-triangle normals, not surfaced by this decoder.
	uvsPtr := le32(hdr[0x14:])

	if int(numTri) < 0 || int(numTri) > 1_000_000 {
		return TriangleElement{}, ErrMalformed
	}

	indices, err := readTriangleIndices(mm, triPtr, int(numTri), numVertices)
	if err != nil {
		return TriangleElement{}, err
	}

	triangles := make([]Triangle, len(indices))
	for i, idx := range indices {
		triangles[i].Indices = idx
	}

	hasUVs := uvsPtr != 0 && numUV > 0
	if hasUVs {
		uvArray, err := readUVArray(mm, uvsPtr, int(numUV))
		if err == nil {
			applyUVMapping(mm, uvMapPtr, triangles, uvArray)
		} else {
			hasUVs = false
		}
	}

	var material *ResolvedMaterial
	if materialPtr != 0 {
		if m, err := ResolveMaterial(mm, materialPtr); err == nil {
			material = m
		}
	} else if materialsAddr != 0 {
		if m, err := ResolveMaterial(mm, materialsAddr); err == nil {
			material = m
		}
	}

	return TriangleElement{Triangles: triangles, HasUVs: hasUVs, Material: material}, nil
}

func readTriangleIndices(mm *memmap.Context, addr uint32, numTri int, numVertices int) ([][3]uint16, error) {
	if addr == 0 {
		return nil, nil
	}
	cur, err := mm.At(addr)
	if err != nil {
		return nil, err
	}
	out := make([][3]uint16, numTri)
	for i := 0; i < numTri; i++ {
		raw, err := cur.Bytes(6)
		if err != nil {
			return out[:i], nil
		}
		a, b, c := le16(raw[0:2]), le16(raw[2:4]), le16(raw[4:6])
		if numVertices > 0 {
			if int(a) >= numVertices || int(b) >= numVertices || int(c) >= numVertices {
				continue // out-of-range index: §3 invariant violation; the slot stays the degenerate triangle {0, 0, 0}.
			}
		}
		out[i] = [3]uint16{a, b, c}
	}
	return out, nil
}

// readUVArray reads n (u, v) float32 pairs, flipping v per §4.7's note
// that stored v is GPU-flipped: decoded UVs are (u, 1-v).
func readUVArray(mm *memmap.Context, addr uint32, n int) ([][2]float32, error) {
	cur, err := mm.At(addr)
	if err != nil {
		return nil, err
	}
	out := make([][2]float32, n)
	for i := 0; i < n; i++ {
		raw, err := cur.Bytes(8)
		if err != nil {
			return out[:i], nil
		}
		u := math.Float32frombits(le32(raw[0:4]))
		v := math.Float32frombits(le32(raw[4:8]))
		out[i] = [2]float32{u, 1 - v}
	}
	return out, nil
}

// applyUVMapping reads one u16 UV-array index per triangle corner (3 per
// triangle) from uvMapAddr and fills in each triangle's UVs from uvArray.
func applyUVMapping(mm *memmap.Context, uvMapAddr uint32, triangles []Triangle, uvArray [][2]float32) {
	if uvMapAddr == 0 {
		return
	}
	cur, err := mm.At(uvMapAddr)
	if err != nil {
		return
	}
	for i := range triangles {
		for c := 0; c < 3; c++ {
			raw, err := cur.Bytes(2)
			if err != nil {
				return
			}
			uvIdx := int(le16(raw))
			if uvIdx >= 0 && uvIdx < len(uvArray) {
				triangles[i].UVs[c] = uvArray[uvIdx]
			}
		}
	}
}
