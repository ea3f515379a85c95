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

// Package geometry decodes GeometricObject mesh records: vertices,
// normals, triangle elements, and the material chain that resolves a
// triangle element down to a texture name (§4.7).
package geometry

import (
	"errors"
	"math"

	"github.com/undersampled/hypearchive/lib/memmap"
)

// ErrMalformed is returned when a geometry record's fields contradict the
// bytes actually available to it.
var ErrMalformed = errors.New("geometry: malformed record")

const geometricObjectHeaderSize = 64

// Vec3 is a 3-component float vector, always in (x, y, z) order — the
// on-disk (x, z, y) swap is undone by this package, never left for the
// caller to redo (§4.7).
type Vec3 struct {
	X, Y, Z float32
}

// Object is a decoded GeometricObject: vertices and normals in (x, y, z)
// order, plus the decoded triangle elements.
type Object struct {
	Vertices []Vec3
	Normals  []Vec3
	Elements []TriangleElement

	SphereRadius float32
	SphereCenter Vec3
}

// triangleElementType is the element_types value that denotes a triangle
// submesh (§4.7); other element types are skipped, not decoded.
const triangleElementType = 1

// Decode reads the 64-byte GeometricObject header at addr, then its
// vertex, normal and element arrays.
func Decode(mm *memmap.Context, addr uint32) (*Object, error) {
	cur, err := mm.At(addr)
	if err != nil {
		return nil, err
	}
	hdr, err := cur.Bytes(geometricObjectHeaderSize)
	if err != nil {
		return nil, err
	}

	numVertices := int(le32(hdr[0x00:]))
	verticesPtr := le32(hdr[0x04:])
	normalsPtr := le32(hdr[0x08:])
	materialsPtr := le32(hdr[0x0C:])
	elementTypesPtr := le32(hdr[0x10:])
	elementsPtr := le32(hdr[0x14:])
	// +0x18..0x24: four unknown words.
	sphereRadius := math.Float32frombits(le32(hdr[0x28:]))
	// Sphere center is stored (x, z, y); swapped to (x, y, z) below.
	scx := math.Float32frombits(le32(hdr[0x2C:]))
	scz := math.Float32frombits(le32(hdr[0x30:]))
	scy := math.Float32frombits(le32(hdr[0x34:]))

	if numVertices < 0 || numVertices > 1_000_000 {
		return nil, ErrMalformed
	}

	vertices, err := readVec3Array(mm, verticesPtr, numVertices)
	if err != nil {
		return nil, err
	}

	var normals []Vec3
	if normalsPtr != 0 {
		normals, err = readVec3Array(mm, normalsPtr, numVertices)
		if err != nil {
			normals = nil // §7 InvariantViolation policy: skip the record's normals, keep the rest.
		}
	}

	elements, err := decodeElements(mm, elementTypesPtr, elementsPtr, numVertices, materialsPtr)
	if err != nil {
		elements = nil
	}

	return &Object{
		Vertices:     vertices,
		Normals:      normals,
		Elements:     elements,
		SphereRadius: sphereRadius,
		SphereCenter: Vec3{X: scx, Y: scy, Z: scz},
	}, nil
}

// readVec3Array reads n (x, z, y) float triples starting at addr and
// returns them swapped to (x, y, z).
func readVec3Array(mm *memmap.Context, addr uint32, n int) ([]Vec3, error) {
	if addr == 0 {
		return nil, nil
	}
	cur, err := mm.At(addr)
	if err != nil {
		return nil, err
	}
	out := make([]Vec3, n)
	for i := 0; i < n; i++ {
		raw, err := cur.Bytes(12)
		if err != nil {
			return nil, err
		}
		x := math.Float32frombits(le32(raw[0:4]))
		z := math.Float32frombits(le32(raw[4:8]))
		y := math.Float32frombits(le32(raw[8:12]))
		out[i] = Vec3{X: x, Y: y, Z: z}
	}
	return out, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
