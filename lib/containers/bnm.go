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

package containers

import "encoding/binary"

// StreamType identifies how a BNM audio entry's bytes are encoded.
type StreamType uint32

const (
	StreamTypePCM  StreamType = 1
	StreamTypeMPDX StreamType = 2
	StreamTypeAPM  StreamType = 4
)

const bnmHeaderSize = 44

// bnmEntrySize reports the per-title entry size: 0x5C or 0x60 bytes
// depending on the bank's version field.
func bnmEntrySize(version uint32) int {
	if version >= 2 {
		return 0x60
	}
	return 0x5C
}

// BNMHeader is the 44-byte BNM section/offset table.
type BNMHeader struct {
	Version          uint32
	MPDXSectionOff   uint32
	PCMSectionOff    uint32
	EntryCount       uint32
	MPDXBlockOff     uint32
	MIDIBlockOff     uint32
	PCMBlockOff      uint32
	APMBlockOff      uint32
	StreamedBlockOff uint32
	EOFOff           uint32
}

// BNMEntry is one audio entry in a bank.
//
// StreamOffset is relative to the respective block's start (PCMBlockOff or
// APMBlockOff) for StreamTypePCM and StreamTypeAPM, but absolute within the
// file for StreamTypeMPDX — the "critical subtlety" §4.2 calls out.
type BNMEntry struct {
	Name         string
	StreamSize   uint32
	StreamOffset uint32
	SampleRate   uint32
	Channels     uint16
	StreamType   StreamType
}

// BNMBank is a fully parsed BNM sound bank.
type BNMBank struct {
	Header  BNMHeader
	Entries []BNMEntry
}

// ParseBNM decodes a BNM bank header and its audio entries from raw.
//
// The exact field layout within each 0x5C/0x60-byte entry beyond the fields
// BNMEntry exposes is version- and title-specific; this reader decodes only
// the fields named in §4.2 and leaves the rest of each entry unread, which
// is sufficient to later call ResolveOffset and decode the underlying
// stream via the APM or PCM path.
func ParseBNM(raw []byte) (*BNMBank, error) {
	if len(raw) < bnmHeaderSize {
		return nil, ErrMalformed
	}
	h := BNMHeader{
		Version:          binary.LittleEndian.Uint32(raw[0:4]),
		MPDXSectionOff:   binary.LittleEndian.Uint32(raw[4:8]),
		PCMSectionOff:    binary.LittleEndian.Uint32(raw[8:12]),
		EntryCount:       binary.LittleEndian.Uint32(raw[12:16]),
		MPDXBlockOff:     binary.LittleEndian.Uint32(raw[16:20]),
		MIDIBlockOff:     binary.LittleEndian.Uint32(raw[20:24]),
		PCMBlockOff:      binary.LittleEndian.Uint32(raw[24:28]),
		APMBlockOff:      binary.LittleEndian.Uint32(raw[28:32]),
		StreamedBlockOff: binary.LittleEndian.Uint32(raw[32:36]),
		EOFOff:           binary.LittleEndian.Uint32(raw[36:40]),
		// raw[40:44] is unused padding/reserved.
	}

	entrySize := bnmEntrySize(h.Version)
	bank := &BNMBank{Header: h}

	pos := bnmHeaderSize
	for i := uint32(0); i < h.EntryCount; i++ {
		if pos+entrySize > len(raw) {
			break // truncated bank: keep entries decoded so far.
		}
		entry := raw[pos : pos+entrySize]
		pos += entrySize

		e := BNMEntry{
			StreamSize:   binary.LittleEndian.Uint32(entry[0:4]),
			StreamOffset: binary.LittleEndian.Uint32(entry[4:8]),
			SampleRate:   binary.LittleEndian.Uint32(entry[8:12]),
			Channels:     binary.LittleEndian.Uint16(entry[12:14]),
			StreamType:   StreamType(binary.LittleEndian.Uint32(entry[14:18])),
			Name:         cString(entry[18:38]),
		}
		bank.Entries = append(bank.Entries, e)
	}

	return bank, nil
}

// ResolveOffset returns the absolute file offset of e's stream bytes,
// applying the per-block-relative-vs-absolute rule (§4.2).
func (h *BNMHeader) ResolveOffset(e BNMEntry) uint32 {
	switch e.StreamType {
	case StreamTypeMPDX:
		return e.StreamOffset
	case StreamTypeAPM:
		return h.APMBlockOff + e.StreamOffset
	default: // StreamTypePCM and anything else assumed block-relative.
		return h.PCMBlockOff + e.StreamOffset
	}
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
