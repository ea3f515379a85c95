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
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/undersampled/hypearchive/lib/codec"
)

func putU32le(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func buildBlockRecord(module, id uint8, base int32, payload []byte) []byte {
	var rec bytes.Buffer
	putU32le(&rec, 0)                  // is_compressed
	putU32le(&rec, uint32(len(payload)))// compressed_size == len(payload) since raw
	putU32le(&rec, 0)                  // compressed_checksum, unused when raw
	putU32le(&rec, uint32(len(payload)))
	putU32le(&rec, codec.Checksum(payload))
	rec.Write(payload)

	var out bytes.Buffer
	out.WriteByte(module)
	out.WriteByte(id)
	out.WriteByte(0) // unk1
	putU32le(&out, uint32(base))
	putU32le(&out, 0) // unk2
	putU32le(&out, 0) // unk3
	putU32le(&out, 0) // max_pos_minus_9
	putU32le(&out, uint32(rec.Len()))
	out.Write(rec.Bytes())
	return out.Bytes()
}

func TestParseSNABlocksOneBlock(tt *testing.T) {
	payload := []byte("geometric object payload bytes")
	var body bytes.Buffer
	body.Write(buildBlockRecord(0x01, 0x02, 0x1000, payload))
	body.WriteByte(0) // module
	body.WriteByte(0) // id
	body.WriteByte(0) // unk1
	putU32le(&body, 0xFFFFFFFF) // sentinel: base_in_memory == -1

	blocks, err := ParseSNABlocks(body.Bytes())
	if err != nil {
		tt.Fatalf("ParseSNABlocks: %v", err)
	}
	if len(blocks) != 1 {
		tt.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Module != 0x01 || b.ID != 0x02 || b.BaseInMemory != 0x1000 {
		tt.Fatalf("got %+v", b)
	}
	if !bytes.Equal(b.Payload, payload) {
		tt.Fatalf("got payload %q, want %q", b.Payload, payload)
	}
}

func TestParseSNABlocksTruncatedHeader(tt *testing.T) {
	blocks, err := ParseSNABlocks([]byte{0x01, 0x02})
	if err != nil {
		tt.Fatalf("ParseSNABlocks: %v", err)
	}
	if len(blocks) != 0 {
		tt.Fatalf("got %d blocks, want 0", len(blocks))
	}
}
