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
	"testing"

	"github.com/undersampled/hypearchive/lib/memmap"
)

func TestScanBlockFindsValidScript(t *testing.T) {
	const base = 0x00B00000
	mm := buildScript(base, [][3]uint32{
		{0, 1, 5},
		{0, 0, 9},
	})

	candidates, err := ScanBlock(mm, memmap.Key{Module: 6, ID: 1}, DefaultTypeTable())
	if err != nil {
		t.Fatalf("ScanBlock: %v", err)
	}
	found := false
	for _, c := range candidates {
		if c.Addr == base && len(c.Nodes) == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a candidate at %#x among %d results", base, len(candidates))
	}
}

func TestScanBlockUnmappedKey(t *testing.T) {
	mm := memmap.NewContext(nil, nil)
	if _, err := ScanBlock(mm, memmap.Key{Module: 9, ID: 9}, DefaultTypeTable()); err != memmap.ErrUnmapped {
		t.Fatalf("got %v, want ErrUnmapped", err)
	}
}
