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

package main

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/undersampled/hypearchive/internal/imageio"
)

// decodeAuxiliaryImage recognizes any image format the stdlib and the
// registered golang.org/x/image decoders support (BMP, TIFF, WebP, PNG)
// and re-encodes it to PNG. This has nothing to do with GF, the game's
// own texture format (§4.5 already owns that path) — it exists so a
// level directory that happens to have ordinary image files dropped
// alongside the game's own archives (reference art, a exported preview)
// still round-trips through `extract` instead of being skipped.
func decodeAuxiliaryImage(data []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	bounds := img.Bounds()
	nrgba := image.NewNRGBA(bounds) // imageio.WritePNG expects straight, not premultiplied, alpha.
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := imageio.WritePNG(&buf, bounds.Dx(), bounds.Dy(), nrgba.Pix); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
