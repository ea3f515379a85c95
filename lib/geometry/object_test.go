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
	"encoding/binary"
	"math"
	"testing"

	"github.com/undersampled/hypearchive/lib/memmap"
)

func putU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

func putF32(b []byte, off int, v float32) {
	putU32(b, off, math.Float32bits(v))
}

func putU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// buildTriangleMesh assembles a single-block memory image containing one
// GeometricObject (3 vertices, no normals, one triangle element, no UVs,
// no material) — enough to exercise Decode end to end.
func buildTriangleMesh(base uint32) *memmap.Context {
	// Layout within the block:
	//   +0x0000 GeometricObject header (64 bytes)
	//   +0x0040 vertices (3 * 12 bytes)
	//   +0x0070 element_types (2 bytes: 1, then sentinel 0xFFFF)
	//   +0x0074 elements pointer array (1 * 4 bytes)
	//   +0x0078 triangle element record (40 bytes)
	//   +0x00A0 triangle indices (3 * 2 bytes)
	const (
		hdrOff       = 0x0000
		verticesOff  = 0x0040
		typesOff     = 0x0070
		elemPtrsOff  = 0x0074
		elemRecOff   = 0x0078
		triIdxOff    = 0x00A0
	)
	payload := make([]byte, 0x00B0)

	verticesAddr := base + verticesOff
	typesAddr := base + typesOff
	elemPtrsAddr := base + elemPtrsOff
	elemRecAddr := base + elemRecOff
	triIdxAddr := base + triIdxOff

	putU32(payload, hdrOff+0x00, 3) // num_vertices
	putU32(payload, hdrOff+0x04, verticesAddr)
	putU32(payload, hdrOff+0x08, 0) // normals_ptr (none)
	putU32(payload, hdrOff+0x0C, 0) // materials_ptr
	putU32(payload, hdrOff+0x10, typesAddr)
	putU32(payload, hdrOff+0x14, elemPtrsAddr)
	putF32(payload, hdrOff+0x28, 2.5) // sphere radius
	putF32(payload, hdrOff+0x2C, 1)   // stored x
	putF32(payload, hdrOff+0x30, 3)   // stored z
	putF32(payload, hdrOff+0x34, 2)   // stored y

	// Vertices, stored (x, z, y): (0,0,0), (1,0,0), (0,0,1) -> swapped (x,y,z).
	putF32(payload, verticesOff+0*12+0, 0)
	putF32(payload, verticesOff+0*12+4, 0)
	putF32(payload, verticesOff+0*12+8, 0)
	putF32(payload, verticesOff+1*12+0, 1)
	putF32(payload, verticesOff+1*12+4, 0)
	putF32(payload, verticesOff+1*12+8, 0)
	putF32(payload, verticesOff+2*12+0, 0)
	putF32(payload, verticesOff+2*12+4, 1)
	putF32(payload, verticesOff+2*12+8, 0)

	putU16(payload, typesOff+0, 1)
	putU16(payload, typesOff+2, elementTypeSentinel)

	putU32(payload, elemPtrsOff, elemRecAddr)

	putU32(payload, elemRecOff+0x00, 0) // material_ptr
	putU16(payload, elemRecOff+0x04, 1) // num_tri
	putU16(payload, elemRecOff+0x06, 0) // num_uv
	putU32(payload, elemRecOff+0x08, triIdxAddr)
	putU32(payload, elemRecOff+0x0C, 0) // uv_map_ptr
	putU32(payload, elemRecOff+0x10, 0) // normals_ptr
	putU32(payload, elemRecOff+0x14, 0) // uvs_ptr

	putU16(payload, triIdxOff+0, 0)
	putU16(payload, triIdxOff+2, 1)
	putU16(payload, triIdxOff+4, 2)

	block := memmap.Block{Module: 3, ID: 1, BaseInMemory: int32(base), Payload: payload}
	return memmap.NewContext([]memmap.Block{block}, nil)
}

func TestDecodeGeometricObject(t *testing.T) {
	const base = 0x00300000
	mm := buildTriangleMesh(base)

	obj, err := Decode(mm, base)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(obj.Vertices) != 3 {
		t.Fatalf("got %d vertices, want 3", len(obj.Vertices))
	}
	want := Vec3{X: 1, Y: 2, Z: 3}
	if obj.SphereCenter != want {
		t.Fatalf("sphere center = %+v, want %+v (x,z,y swapped to x,y,z)", obj.SphereCenter, want)
	}
	if len(obj.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(obj.Elements))
	}
	tri := obj.Elements[0].Triangles
	if len(tri) != 1 || tri[0].Indices != [3]uint16{0, 1, 2} {
		t.Fatalf("got triangles %+v", tri)
	}
}

func TestScanBlockFiltersDegenerateGeometry(t *testing.T) {
	const base = 0x00400000
	mm := buildTriangleMesh(base)

	candidates, err := ScanBlock(mm, memmap.Key{Module: 3, ID: 1})
	if err != nil {
		t.Fatalf("ScanBlock: %v", err)
	}
	found := false
	for _, c := range candidates {
		if c.Addr == base {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected scan to find the valid GeometricObject at block base, candidates=%+v", candidates)
	}
}
