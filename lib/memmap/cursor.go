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

import "math"

// Cursor is a stateful little-endian reader positioned within a single
// block's payload. It advances only within that one block — reading past
// its end returns ErrCrossesBoundary rather than following into the next
// block, mirroring how the game itself only ever walked one allocation at a
// time.
//
// A Cursor is cheap to create and holds no heap state beyond the slice it
// was given; its zero value is not useful, construct one with Context.At.
type Cursor struct {
	block *Block
	base  uint32
	off   int
}

// At returns a Cursor positioned at addr, or ErrUnmapped if addr is not
// covered by any block.
func (c *Context) At(addr uint32) (Cursor, error) {
	b, off, err := c.Locate(addr)
	if err != nil {
		return Cursor{}, err
	}
	return Cursor{block: b, base: addr - uint32(off), off: off}, nil
}

// Addr returns the virtual address the cursor is currently positioned at.
func (cur *Cursor) Addr() uint32 { return cur.base + uint32(cur.off) }

// Remaining returns the number of bytes left before the cursor would run
// off the end of its block.
func (cur *Cursor) Remaining() int { return len(cur.block.Payload) - cur.off }

func (cur *Cursor) need(n int) error {
	if cur.off+n > len(cur.block.Payload) {
		return ErrCrossesBoundary
	}
	return nil
}

// Bytes returns the next n bytes without copying and advances the cursor.
func (cur *Cursor) Bytes(n int) ([]byte, error) {
	if err := cur.need(n); err != nil {
		return nil, err
	}
	b := cur.block.Payload[cur.off : cur.off+n]
	cur.off += n
	return b, nil
}

// Skip advances the cursor by n bytes without reading them.
func (cur *Cursor) Skip(n int) error {
	if err := cur.need(n); err != nil {
		return err
	}
	cur.off += n
	return nil
}

// U8 reads one byte and advances the cursor.
func (cur *Cursor) U8() (uint8, error) {
	b, err := cur.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// I8 reads one signed byte and advances the cursor.
func (cur *Cursor) I8() (int8, error) {
	v, err := cur.U8()
	return int8(v), err
}

// U16 reads a little-endian u16 and advances the cursor.
func (cur *Cursor) U16() (uint16, error) {
	b, err := cur.Bytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// I16 reads a little-endian i16 and advances the cursor.
func (cur *Cursor) I16() (int16, error) {
	v, err := cur.U16()
	return int16(v), err
}

// U32 reads a little-endian u32 and advances the cursor.
func (cur *Cursor) U32() (uint32, error) {
	b, err := cur.Bytes(4)
	if err != nil {
		return 0, err
	}
	return le32(b), nil
}

// I32 reads a little-endian i32 and advances the cursor.
func (cur *Cursor) I32() (int32, error) {
	v, err := cur.U32()
	return int32(v), err
}

// F32 reads a little-endian IEEE-754 float32 and advances the cursor.
func (cur *Cursor) F32() (float32, error) {
	v, err := cur.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}
