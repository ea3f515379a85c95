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

// Package memmap reconstructs the flat 32-bit virtual address space the
// game's own allocator saw from the disjoint blocks an SNA file stores, and
// resolves the separate relocation table against it. Everything above this
// package (scenegraph, geometry, family, script) addresses memory the way
// the game did; memmap is what hides the scattering across blocks.
package memmap

// Block is a contiguous byte region identified by (Module, ID), carrying the
// virtual address it occupied when the game wrote it out.
//
// Two blocks never overlap in virtual space (§3). The Memory Map exclusively
// owns Payload; nothing above this package ever copies or outlives it.
type Block struct {
	Module       uint8
	ID           uint8
	BaseInMemory int32
	Payload      []byte
	FilePos      int64
}

// Key identifies a block by its (module, id) pair.
type Key struct {
	Module uint8
	ID     uint8
}

// Key returns b's (Module, ID) pair.
func (b *Block) Key() Key { return Key{b.Module, b.ID} }

// End returns the virtual address one past the last byte of b's payload.
func (b *Block) End() int64 {
	return int64(b.BaseInMemory) + int64(len(b.Payload))
}

// Contains reports whether the virtual address addr falls within b's range.
func (b *Block) Contains(addr uint32) bool {
	a := int64(addr)
	base := int64(b.BaseInMemory)
	return base <= a && a < base+int64(len(b.Payload))
}
