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

package dsgvar

import (
	"encoding/binary"
	"testing"
)

func TestDecodeTable(t *testing.T) {
	raw := make([]byte, 4+entrySize*2)
	binary.LittleEndian.PutUint32(raw[0:4], 2)

	raw[4] = byte(TypeInt)
	binary.LittleEndian.PutUint32(raw[8:12], 42)

	raw[12] = byte(TypeBool)
	binary.LittleEndian.PutUint32(raw[16:20], 1)

	tbl, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tbl.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(tbl.Entries))
	}
	e0, ok := tbl.At(0)
	if !ok || e0.Type != TypeInt || e0.Value != 42 {
		t.Fatalf("At(0) = %+v, %v", e0, ok)
	}
	e1, ok := tbl.At(1)
	if !ok || e1.Type != TypeBool || e1.Value != 1 {
		t.Fatalf("At(1) = %+v, %v", e1, ok)
	}
	if _, ok := tbl.At(2); ok {
		t.Fatal("At(2) should be out of range")
	}
}

func TestDecodeTruncated(t *testing.T) {
	raw := make([]byte, 4+entrySize)
	binary.LittleEndian.PutUint32(raw[0:4], 5) // declares 5 entries, has room for 1
	if _, err := Decode(raw); err != ErrMalformed {
		t.Fatalf("got %v, want ErrMalformed", err)
	}
}
