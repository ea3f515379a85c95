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

// paletteLookup returns the RGBA8 color for index idx in a palette packed
// at bytesPerColor bytes each (3 for BGR, 4 for BGRA — §4.5 stores palette
// colors byte-swapped from RGBA). An out-of-range idx returns opaque black
// rather than panicking, since a truncated or corrupt palette should not
// abort decoding of an otherwise good texture.
func paletteLookup(palette []byte, bytesPerColor int, idx uint8) (r, g, b, a uint8) {
	off := int(idx) * bytesPerColor
	if bytesPerColor <= 0 || off+bytesPerColor > len(palette) {
		return 0, 0, 0, 0xFF
	}
	b = palette[off]
	g = palette[off+1]
	r = palette[off+2]
	a = 0xFF
	if bytesPerColor >= 4 {
		a = palette[off+3]
	}
	return r, g, b, a
}
