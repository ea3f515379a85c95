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

// Package texture decodes the game's GF texture format: a Montreal-dialect
// header, per-channel RLE streams, and one of several packed pixel formats,
// synthesized into an RGBA8 buffer (§4.5).
package texture

import (
	"encoding/binary"
	"errors"

	"github.com/undersampled/hypearchive/lib/codec"
)

// PixelFormat is the tagged variant of the montreal_type byte (§9 Design
// Notes: "Polymorphism across GF pixel formats").
type PixelFormat int

const (
	FormatIndexed PixelFormat = 5
	FormatRGB565  PixelFormat = 10
	FormatARGB1555 PixelFormat = 11
	FormatARGB4444 PixelFormat = 12
)

// ErrUnsupportedFormat is returned for a montreal_type this decoder does
// not recognise.
var ErrUnsupportedFormat = errors.New("texture: unsupported montreal_type")

// Image is a decoded GF texture: tightly packed RGBA8 bytes, row-major,
// top-to-bottom as emitted (orientation already resolved per §4.5).
type Image struct {
	Width, Height int
	RGBA          []byte // len == Width*Height*4
}

// Header is the parsed Montreal GF header, before pixel synthesis.
type Header struct {
	Version             uint8
	Width, Height        uint32
	Channels             uint8
	RepeatByte           uint8
	PaletteColors        uint16
	PaletteBytesPerColor uint8
	ChannelPixels        uint32
	MontrealType         PixelFormat
	Palette              []byte
}

// DecodeOptions controls texture decode behaviour that depends on where the
// GF bytes came from, not on the bytes themselves. The §4.5 upside-down
// rule follows from this plus the decoded dimensions: textures from
// Textures.cnt that aren't 640x480 are stored upside-down and must be
// flipped; textures from Vignette.cnt, or any 640x480 texture, are emitted
// as-is.
type DecodeOptions struct {
	// SourceIsVignette should be true when the bytes came from
	// Vignette.cnt; it disables the flip regardless of dimensions.
	SourceIsVignette bool
}

// Decode parses a Montreal GF header from raw, RLE-decodes and interleaves
// its channels, and converts the result to an RGBA8 Image.
func Decode(raw []byte, opts DecodeOptions) (*Image, error) {
	hdr, body, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}

	channels := synthesizeChannels(hdr, body)
	packed := interleave(hdr, channels)

	rgba, err := convertToRGBA(hdr, packed)
	if err != nil {
		return nil, err
	}

	img := &Image{Width: int(hdr.Width), Height: int(hdr.Height), RGBA: rgba}

	flip := !opts.SourceIsVignette && !(hdr.Width == 640 && hdr.Height == 480)
	if flip {
		flipVertical(img)
	}
	return img, nil
}

func parseHeader(raw []byte) (Header, []byte, error) {
	// version, width, height, channels, repeat_byte, palette_colors,
	// palette_bytes_per_color, 3 unknown bytes, u32, channel_pixels,
	// montreal_type.
	const fixedSize = 1 + 4 + 4 + 1 + 1 + 2 + 1 + 3 + 4 + 4 + 1
	if len(raw) < fixedSize {
		return Header{}, nil, errors.New("texture: truncated GF header")
	}
	pos := 0
	h := Header{}
	h.Version = raw[pos]
	pos++
	h.Width = binary.LittleEndian.Uint32(raw[pos : pos+4])
	pos += 4
	h.Height = binary.LittleEndian.Uint32(raw[pos : pos+4])
	pos += 4
	h.Channels = raw[pos]
	pos++
	h.RepeatByte = raw[pos]
	pos++
	h.PaletteColors = binary.LittleEndian.Uint16(raw[pos : pos+2])
	pos += 2
	h.PaletteBytesPerColor = raw[pos]
	pos++
	pos += 3 // unknown bytes
	pos += 4 // unknown u32
	h.ChannelPixels = binary.LittleEndian.Uint32(raw[pos : pos+4])
	pos += 4
	h.MontrealType = PixelFormat(raw[pos])
	pos++

	if h.PaletteColors > 0 {
		n := int(h.PaletteColors) * int(h.PaletteBytesPerColor)
		if pos+n > len(raw) {
			return Header{}, nil, errors.New("texture: truncated palette")
		}
		h.Palette = raw[pos : pos+n]
		pos += n
	}

	return h, raw[pos:], nil
}

// synthesizeChannels RLE-decodes each of hdr.Channels independent streams
// of hdr.ChannelPixels bytes, returning one slice per channel. Each
// channel's encoding is variable length and packed back to back with no
// length prefix, so codec.DecodeRLE's consumed count is what lets the next
// channel's decode pick up where the previous one left off.
func synthesizeChannels(hdr Header, body []byte) [][]byte {
	channels := make([][]byte, hdr.Channels)
	offset := 0
	for c := 0; c < int(hdr.Channels); c++ {
		decoded, consumed := codec.DecodeRLE(body[offset:], hdr.RepeatByte, int(hdr.ChannelPixels))
		channels[c] = decoded
		offset += consumed
	}
	return channels
}

// interleave combines per-channel streams into a tightly packed
// width*height*channels buffer, discarding any mipmap bytes past the first
// level (ChannelPixels already includes every level; only the first
// width*height pixels of each channel are level 0).
func interleave(hdr Header, channels [][]byte) []byte {
	pixelCount := int(hdr.Width) * int(hdr.Height)
	out := make([]byte, pixelCount*int(hdr.Channels))
	for p := 0; p < pixelCount; p++ {
		for c := 0; c < int(hdr.Channels); c++ {
			if p < len(channels[c]) {
				out[p*int(hdr.Channels)+c] = channels[c][p]
			}
		}
	}
	return out
}

func flipVertical(img *Image) {
	stride := img.Width * 4
	tmp := make([]byte, stride)
	for y := 0; y < img.Height/2; y++ {
		top := img.RGBA[y*stride : y*stride+stride]
		bottom := img.RGBA[(img.Height-1-y)*stride : (img.Height-1-y)*stride+stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
