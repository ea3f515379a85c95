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

package memmap

import (
	"errors"
	"sort"

	"golang.org/x/exp/slices"

	"github.com/undersampled/hypearchive/internal/diag"
)

// ErrUnmapped is returned when a virtual address resolves to no block.
var ErrUnmapped = errors.New("memmap: unmapped address")

// ErrCrossesBoundary is returned when a requested read would extend past
// the end of the block it starts in.
var ErrCrossesBoundary = errors.New("memmap: read crosses block boundary")

// Context combines a block table and one relocation table into the virtual
// memory interface every typed-record walker reads through (§4.4).
//
// Once built, a Context is read-only and safe for concurrent use by
// multiple walkers or goroutines (§5): Locate, Read, and FollowPointer touch
// no mutable state.
type Context struct {
	blocks []Block
	byKey  map[Key]*Block
	reloc  *RelocTable
	logger diag.Logger
}

// SetLogger attaches a diagnostics sink for scan-mode fallbacks. It is meant
// to be called once, right after NewContext and before the Context is handed
// to concurrent walkers — it is not itself synchronized.
func (c *Context) SetLogger(l diag.Logger) { c.logger = l }

// NewContext builds a Context over blocks and an optional relocation table
// (nil is valid — FollowPointer then always falls back to optimistic scan
// resolution).
func NewContext(blocks []Block, reloc *RelocTable) *Context {
	c := &Context{
		blocks: blocks,
		byKey:  make(map[Key]*Block, len(blocks)),
		reloc:  reloc,
	}
	for i := range c.blocks {
		c.byKey[c.blocks[i].Key()] = &c.blocks[i]
	}
	slices.SortFunc(c.blocks, func(a, b Block) bool {
		return a.BaseInMemory < b.BaseInMemory
	})
	// Re-index byKey after sort since it holds pointers into the slice.
	for i := range c.blocks {
		c.byKey[c.blocks[i].Key()] = &c.blocks[i]
	}
	return c
}

// Block returns the block identified by key, if present.
func (c *Context) Block(key Key) (*Block, bool) {
	b, ok := c.byKey[key]
	return b, ok
}

// Blocks returns every block in the context, ordered by virtual base
// address (the order the meshes and scripts subcommands iterate in).
func (c *Context) Blocks() []Block { return c.blocks }

// RelocTable returns the relocation table this Context was built with, or
// nil.
func (c *Context) RelocTable() *RelocTable { return c.reloc }

// Locate finds the unique block whose half-open virtual range covers addr
// and returns it along with the byte offset within its payload. It returns
// ErrUnmapped if no block covers addr (§3: resolution is a partial
// function — at most one block covers any address).
func (c *Context) Locate(addr uint32) (*Block, int, error) {
	// Blocks are sorted by BaseInMemory; binary search for the last block
	// whose base is <= addr, then confirm addr falls inside its extent.
	i := sort.Search(len(c.blocks), func(i int) bool {
		return int64(c.blocks[i].BaseInMemory) > int64(addr)
	})
	if i == 0 {
		return nil, 0, ErrUnmapped
	}
	b := &c.blocks[i-1]
	if !b.Contains(addr) {
		return nil, 0, ErrUnmapped
	}
	return b, int(int64(addr) - int64(b.BaseInMemory)), nil
}

// Read returns a zero-copy slice of n bytes starting at addr. It fails with
// ErrCrossesBoundary if the requested range would extend past the end of
// the block addr resolves into.
func (c *Context) Read(addr uint32, n int) ([]byte, error) {
	b, off, err := c.Locate(addr)
	if err != nil {
		return nil, err
	}
	if off+n > len(b.Payload) {
		return nil, ErrCrossesBoundary
	}
	return b.Payload[off : off+n], nil
}

// FollowPointer reads the u32 at addr and returns the address it points to.
//
// If the relocation table declares an entry whose OffsetInMemory equals addr
// (looked up across every source block), the stored value is trusted
// without a resolution check (the table is the ground truth).
// Otherwise (scan mode, §4.7 "Scan mode"), the raw u32 value is returned
// only if it resolves to some mapped address; if it resolves to nothing,
// ErrNonPointer is returned.
func (c *Context) FollowPointer(addr uint32) (uint32, error) {
	b, off, err := c.Locate(addr)
	if err != nil {
		return 0, err
	}
	if off+4 > len(b.Payload) {
		return 0, ErrCrossesBoundary
	}
	raw := le32(b.Payload[off : off+4])

	if c.reloc != nil {
		// The relocation table's OffsetInMemory is the absolute virtual
		// address of the pointer word itself (the worked example in §8e
		// uses offset_in_memory = block_base + in-block offset), so the
		// lookup key is addr, not the in-block offset off.
		if _, ok := c.reloc.Lookup(addr); ok {
			return raw, nil
		}
	}
	if _, _, err := c.Locate(raw); err != nil {
		diag.Log(c.logger, "memmap: scan-mode value 0x%08x at 0x%08x does not resolve, treating as non-pointer", raw, addr)
		return 0, ErrNonPointer
	}
	return raw, nil
}

// ErrNonPointer is returned by FollowPointer when scanning optimistically
// (no relocation entry covers the source word) and the stored value does
// not resolve to any mapped address.
var ErrNonPointer = errors.New("memmap: value does not resolve to a mapped address")

func le32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
