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
	"encoding/binary"

	"github.com/undersampled/hypearchive/lib/codec"
)

// blockRecordHeaderSize is (module:u8, id:u8, unk1:u8, base_in_memory:i32).
const blockRecordHeaderSize = 7

// blockRecordExtraSize is (unk2, unk3, max_pos_minus_9, size), each u32.
const blockRecordExtraSize = 16

// ParseSNABlocks decodes the already outer-XOR-unmasked body of an SNA file
// (§4.3) into a sequence of Blocks with decompressed payloads.
//
// Error policy matches §4.3 and §7: a malformed size field truncates the
// stream, retaining every block decoded so far; a block whose envelope
// checksum fails is skipped (not fatal to the file), and parsing resumes at
// the next block record.
func ParseSNABlocks(body []byte) ([]Block, error) {
	var blocks []Block
	pos := 0

	for {
		if pos+blockRecordHeaderSize > len(body) {
			break // truncated before the terminator: keep what we have.
		}

		module := body[pos]
		id := body[pos+1]
		// unk1 at body[pos+2] is not interpreted.
		base := int32(binary.LittleEndian.Uint32(body[pos+3 : pos+7]))
		pos += blockRecordHeaderSize

		if base == -1 {
			break // sentinel: terminates the table.
		}

		if pos+blockRecordExtraSize > len(body) {
			break // malformed size fields: truncate, keep prior blocks.
		}
		// unk2, unk3, maxPosMinus9 are not interpreted.
		size := binary.LittleEndian.Uint32(body[pos+12 : pos+16])
		pos += blockRecordExtraSize

		end := pos + int(size)
		if size == 0 || end < pos || end > len(body) {
			break // malformed size field: truncate, keep prior blocks.
		}
		recordStart := pos
		record := body[pos:end]
		pos = end

		payload, _, err := codec.DecodeEnvelope(record)
		if err != nil {
			// Bad checksum (or a malformed envelope nested within an
			// otherwise well-formed record): reject this block only.
			continue
		}

		blocks = append(blocks, Block{
			Module:       module,
			ID:           id,
			BaseInMemory: base,
			Payload:      payload,
			FilePos:      int64(recordStart),
		})
	}

	return blocks, nil
}
