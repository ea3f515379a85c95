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

package texture

// convertToRGBA walks packed (hdr.Channels bytes per pixel) and produces a
// tightly packed RGBA8 buffer, dispatching on hdr.MontrealType (§9's tagged
// pixel-format variant). Channels >= 3 is the BGRA8888/BGR888 direct-color
// variant (§4.5's final bullet) and is decided by channel count rather than
// by montreal_type, since that byte only distinguishes the single- and
// dual-channel formats below it.
func convertToRGBA(hdr Header, packed []byte) ([]byte, error) {
	pixelCount := int(hdr.Width) * int(hdr.Height)
	out := make([]byte, pixelCount*4)
	stride := int(hdr.Channels)

	if stride >= 3 {
		for p := 0; p < pixelCount; p++ {
			b := packed[p*stride+0]
			g := packed[p*stride+1]
			r := packed[p*stride+2]
			a := uint8(0xFF)
			if stride >= 4 {
				a = packed[p*stride+3]
			}
			putRGBA(out, p, r, g, b, a)
		}
		return out, nil
	}

	switch hdr.MontrealType {
	case FormatIndexed:
		for p := 0; p < pixelCount; p++ {
			idx := packed[p*stride]
			r, g, b, a := paletteLookup(hdr.Palette, int(hdr.PaletteBytesPerColor), idx)
			putRGBA(out, p, r, g, b, a)
		}
	case FormatRGB565:
		for p := 0; p < pixelCount; p++ {
			lo, hi := packed[p*stride], packed[p*stride+1]
			v := uint16(lo) | uint16(hi)<<8
			r := expand5(uint8((v >> 11) & 0x1F))
			g := expand6(uint8((v >> 5) & 0x3F))
			b := expand5(uint8(v & 0x1F))
			putRGBA(out, p, r, g, b, 0xFF)
		}
	case FormatARGB1555:
		for p := 0; p < pixelCount; p++ {
			lo, hi := packed[p*stride], packed[p*stride+1]
			v := uint16(lo) | uint16(hi)<<8
			a := uint8(0)
			if v&0x8000 != 0 {
				a = 0xFF
			}
			r := expand5(uint8((v >> 10) & 0x1F))
			g := expand5(uint8((v >> 5) & 0x1F))
			b := expand5(uint8(v & 0x1F))
			putRGBA(out, p, r, g, b, a)
		}
	case FormatARGB4444:
		for p := 0; p < pixelCount; p++ {
			lo, hi := packed[p*stride], packed[p*stride+1]
			v := uint16(lo) | uint16(hi)<<8
			a := expand4(uint8((v >> 12) & 0x0F))
			r := expand4(uint8((v >> 8) & 0x0F))
			g := expand4(uint8((v >> 4) & 0x0F))
			b := expand4(uint8(v & 0x0F))
			putRGBA(out, p, r, g, b, a)
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	return out, nil
}

func putRGBA(out []byte, p int, r, g, b, a uint8) {
	out[p*4+0] = r
	out[p*4+1] = g
	out[p*4+2] = b
	out[p*4+3] = a
}

func expand5(v uint8) uint8 { return uint8((uint16(v)*255 + 15) / 31) }
func expand6(v uint8) uint8 { return uint8((uint16(v)*255 + 31) / 63) }
func expand4(v uint8) uint8 { return uint8((uint16(v)*255 + 7) / 15) }
