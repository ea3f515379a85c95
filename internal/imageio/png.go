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

// Package imageio adapts texture.Image's tightly packed RGBA8 buffers to
// the standard library's image and image/png packages. Like the teacher's
// own lib/nie and lib/uncompng, this is a thin adapter around a fixed pixel
// layout, not a general-purpose image library.
package imageio

import (
	"image"
	"image/png"
	"io"
)

// WritePNG encodes a tightly packed RGBA8 buffer (stride == width*4) as a
// PNG image to w.
func WritePNG(w io.Writer, width, height int, rgba []byte) error {
	img := &image.NRGBA{
		Pix:    rgba,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return png.Encode(w, img)
}
