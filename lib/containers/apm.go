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

import (
	"encoding/binary"
	"errors"
)

const apmHeaderSize = 100

// ErrUnsupportedVariant is returned for APM quirks this title does not use
// (the Rayman-2 "clear-low-3-bits" variant, explicitly out of scope per
// §4.2).
var ErrUnsupportedVariant = errors.New("containers: unsupported APM variant")

// APMChannelSeed is the per-channel IMA-ADPCM decoder seed stored in an APM
// header, in last-to-first channel order.
type APMChannelSeed struct {
	History       int32
	StepIndex     int32
	FirstByteCopy int32
}

// APMHeader is the 100-byte Ubisoft IMA-ADPCM header.
type APMHeader struct {
	SampleRate    uint32
	Channels      uint16
	BitsPerSample uint16
	Seeds         []APMChannelSeed // one per channel, last-to-first in the file.
}

// APMFile is a decoded APM header plus its raw nibble stream.
type APMFile struct {
	Header  APMHeader
	nibbles []byte
}

// ParseAPM decodes the 100-byte APM header from raw and retains the
// remaining bytes as the raw ADPCM nibble stream.
func ParseAPM(raw []byte) (*APMFile, error) {
	if len(raw) < apmHeaderSize {
		return nil, ErrMalformed
	}
	// WAVEFORMATEX-like fields occupy the first part of the header; the
	// exact byte offsets of sampleRate/channels mirror a standard
	// WAVEFORMATEX layout (format tag, channels, sample rate, byte rate,
	// block align, bits per sample) as §4.2 describes.
	channels := binary.LittleEndian.Uint16(raw[2:4])
	sampleRate := binary.LittleEndian.Uint32(raw[4:8])
	bitsPerSample := binary.LittleEndian.Uint16(raw[14:16])

	if channels == 0 || channels > 8 {
		return nil, ErrMalformed
	}

	// The per-channel seed block occupies the last (channels * 12) bytes of
	// the 100-byte header, stored last-to-first.
	seedBytes := int(channels) * 12
	seedStart := apmHeaderSize - seedBytes
	if seedStart < 16 {
		return nil, ErrMalformed
	}

	seeds := make([]APMChannelSeed, channels)
	for i := 0; i < int(channels); i++ {
		// Last-to-first: the first seed in the file belongs to the last
		// channel.
		off := seedStart + i*12
		ch := int(channels) - 1 - i
		seeds[ch] = APMChannelSeed{
			History:       int32(binary.LittleEndian.Uint32(raw[off : off+4])),
			StepIndex:     int32(binary.LittleEndian.Uint32(raw[off+4 : off+8])),
			FirstByteCopy: int32(binary.LittleEndian.Uint32(raw[off+8 : off+12])),
		}
	}

	return &APMFile{
		Header: APMHeader{
			SampleRate:    sampleRate,
			Channels:      channels,
			BitsPerSample: bitsPerSample,
			Seeds:         seeds,
		},
		nibbles: raw[apmHeaderSize:],
	}, nil
}

var imaIndexTable = [16]int32{-1, -1, -1, -1, 2, 4, 6, 8, -1, -1, -1, -1, 2, 4, 6, 8}

var imaStepTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17,
	19, 21, 23, 25, 28, 31, 34, 37, 41, 45,
	50, 55, 60, 66, 73, 80, 88, 97, 107, 118,
	130, 143, 157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658, 724, 796,
	876, 963, 1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066,
	2272, 2499, 2749, 3024, 3327, 3660, 4026, 4428, 4871, 5358,
	5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

// DecodePCM16 decodes f's raw nibble stream into interleaved signed 16-bit
// PCM samples, using standard IMA-ADPCM (not the Rayman-2 clear-low-3-bits
// quirk, which §4.2 says must not be applied to this title). Each byte's
// high nibble is decoded before its low nibble, per the format note.
func (f *APMFile) DecodePCM16() []int16 {
	channels := int(f.Header.Channels)
	history := make([]int32, channels)
	stepIndex := make([]int32, channels)
	for i, s := range f.Header.Seeds {
		history[i] = s.History
		stepIndex[i] = s.StepIndex
	}

	var out []int16
	ch := 0
	for _, b := range f.nibbles {
		for _, nibble := range [2]byte{b >> 4, b & 0x0F} {
			sample := decodeIMANibble(nibble, &history[ch], &stepIndex[ch])
			out = append(out, int16(sample))
			ch++
			if ch == channels {
				ch = 0
			}
		}
	}
	return out
}

func decodeIMANibble(nibble byte, history, stepIndex *int32) int32 {
	step := imaStepTable[*stepIndex]
	diff := step >> 3
	if nibble&1 != 0 {
		diff += step >> 2
	}
	if nibble&2 != 0 {
		diff += step >> 1
	}
	if nibble&4 != 0 {
		diff += step
	}
	if nibble&8 != 0 {
		diff = -diff
	}

	sample := *history + diff
	switch {
	case sample > 32767:
		sample = 32767
	case sample < -32768:
		sample = -32768
	}
	*history = sample

	*stepIndex += imaIndexTable[nibble]
	switch {
	case *stepIndex < 0:
		*stepIndex = 0
	case *stepIndex > int32(len(imaStepTable)-1):
		*stepIndex = int32(len(imaStepTable) - 1)
	}
	return sample
}
