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

package family

import (
	"testing"

	"github.com/undersampled/hypearchive/lib/memmap"
)

func almostEqual(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

// TestDecodeCompressedMatrixType1 is the §8(f) worked example: a type-1
// matrix storing (x=2, z=4, y=6) raw i16 components, each scaled /512,
// decoding to translation (2/512, 6/512, 4/512) with identity rotation
// and unit scale.
func TestDecodeCompressedMatrixType1(t *testing.T) {
	const base = 0x00500000
	payload := []byte{
		0x01, 0x00, // type word (low nibble 1)
		0x02, 0x00, // x = 2
		0x04, 0x00, // z = 4
		0x06, 0x00, // y = 6
	}
	block := memmap.Block{Module: 4, ID: 1, BaseInMemory: base, Payload: payload}
	mm := memmap.NewContext([]memmap.Block{block}, nil)

	m, err := DecodeCompressedMatrix(mm, base)
	if err != nil {
		t.Fatalf("DecodeCompressedMatrix: %v", err)
	}

	want := [3]float32{2.0 / 512, 6.0 / 512, 4.0 / 512}
	for i := range want {
		if !almostEqual(m.Translation[i], want[i]) {
			t.Fatalf("translation[%d] = %v, want %v", i, m.Translation[i], want[i])
		}
	}
	if m.Rotation != [4]float32{1, 0, 0, 0} {
		t.Fatalf("rotation = %v, want identity", m.Rotation)
	}
	if m.Scale != [3]float32{1, 1, 1} {
		t.Fatalf("scale = %v, want unit", m.Scale)
	}
}

func TestDecodeCompressedMatrixType2Rotation(t *testing.T) {
	const base = 0x00600000
	payload := make([]byte, 10)
	payload[0], payload[1] = 0x02, 0x00 // type 2
	putI16(payload, 2, 32767)           // w
	putI16(payload, 4, 0)
	putI16(payload, 6, 0)
	putI16(payload, 8, 0)

	block := memmap.Block{Module: 4, ID: 2, BaseInMemory: base, Payload: payload}
	mm := memmap.NewContext([]memmap.Block{block}, nil)

	m, err := DecodeCompressedMatrix(mm, base)
	if err != nil {
		t.Fatalf("DecodeCompressedMatrix: %v", err)
	}
	if !almostEqual(m.Rotation[0], 1.0) {
		t.Fatalf("rotation.w = %v, want ~1.0", m.Rotation[0])
	}
}

func TestDecodeCompressedMatrixUnsupportedType(t *testing.T) {
	const base = 0x00700000
	payload := []byte{0x09, 0x00} // type 9: not in the table.
	block := memmap.Block{Module: 4, ID: 3, BaseInMemory: base, Payload: payload}
	mm := memmap.NewContext([]memmap.Block{block}, nil)

	if _, err := DecodeCompressedMatrix(mm, base); err != ErrUnsupportedMatrixType {
		t.Fatalf("got %v, want ErrUnsupportedMatrixType", err)
	}
}

func putI16(b []byte, off int, v int16) {
	u := uint16(v)
	b[off] = byte(u)
	b[off+1] = byte(u >> 8)
}
