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

package codec

import "encoding/binary"

// EnvelopeHeaderSize is the fixed size, in bytes, of a compressed-block
// envelope header (§4.1): is_compressed, compressed_size,
// compressed_checksum, decompressed_size, decompressed_checksum, each a
// little-endian u32.
const EnvelopeHeaderSize = 20

// Envelope is a parsed, not-yet-decoded compressed-block header.
type Envelope struct {
	IsCompressed         bool
	CompressedSize       uint32
	CompressedChecksum   uint32
	DecompressedSize     uint32
	DecompressedChecksum uint32
}

// ParseEnvelope reads the 20-byte envelope header from the front of b and
// returns it along with the number of header bytes consumed.
func ParseEnvelope(b []byte) (Envelope, int, error) {
	if len(b) < EnvelopeHeaderSize {
		return Envelope{}, 0, malformed("codec.ParseEnvelope", errTruncated)
	}
	e := Envelope{
		IsCompressed:         binary.LittleEndian.Uint32(b[0:4]) != 0,
		CompressedSize:       binary.LittleEndian.Uint32(b[4:8]),
		CompressedChecksum:   binary.LittleEndian.Uint32(b[8:12]),
		DecompressedSize:     binary.LittleEndian.Uint32(b[12:16]),
		DecompressedChecksum: binary.LittleEndian.Uint32(b[16:20]),
	}
	return e, EnvelopeHeaderSize, nil
}

// DecodeEnvelope parses and fully decodes one compressed-block envelope
// starting at the front of b, returning the decompressed payload and the
// total number of bytes of b consumed (header + compressed payload).
//
// Both the compressed and decompressed payloads are checksum-verified per
// §4.1; a mismatch is reported as a ChecksumMismatch-kind *Error and is
// fatal to the caller's current block, per §7.
func DecodeEnvelope(b []byte) (payload []byte, consumed int, err error) {
	e, headerLen, err := ParseEnvelope(b)
	if err != nil {
		return nil, 0, err
	}
	rest := b[headerLen:]
	if uint32(len(rest)) < e.CompressedSize {
		return nil, 0, malformed("codec.DecodeEnvelope", errEnvelopeTooBig)
	}
	compressed := rest[:e.CompressedSize]

	if !e.IsCompressed {
		if err := VerifyChecksum("codec.DecodeEnvelope: raw payload", compressed, e.DecompressedChecksum); err != nil {
			return nil, 0, err
		}
		out := make([]byte, len(compressed))
		copy(out, compressed)
		return out, headerLen + int(e.CompressedSize), nil
	}

	if err := VerifyChecksum("codec.DecodeEnvelope: compressed payload", compressed, e.CompressedChecksum); err != nil {
		return nil, 0, err
	}
	out, err := DecompressLZO1X(compressed, int(e.DecompressedSize))
	if err != nil {
		return nil, 0, malformed("codec.DecodeEnvelope: lzo1x", err)
	}
	if err := VerifyChecksum("codec.DecodeEnvelope: decompressed payload", out, e.DecompressedChecksum); err != nil {
		return nil, 0, err
	}
	return out, headerLen + int(e.CompressedSize), nil
}
