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

package geometry

import (
	"math"

	"github.com/undersampled/hypearchive/lib/memmap"
)

// textureInfoNameOffset is the fixed offset of a TextureInfo's
// null-terminated name (§4.7: "TextureInfo contains a null-terminated
// name at a fixed offset — and that name is the only stable join key
// against the CNT-extracted texture files").
const textureInfoNameOffset = 0x08

const textureInfoNameMaxLen = 64

// Vector4 is a 4-component float, used for the material's ambient,
// diffuse, specular and base color coefficients.
type Vector4 struct {
	X, Y, Z, W float32
}

// ResolvedMaterial is a VisualMaterial dereferenced through its
// GameMaterial pointer, with its texture reference list resolved down to
// texture names.
type ResolvedMaterial struct {
	Flags                           uint32
	Ambient, Diffuse, Specular, Base Vector4
	TextureNames                     []string
}

const gameMaterialFixedSize = 4   // material_ptr field within GameMaterial pointing at the VisualMaterial.
const visualMaterialFixedSize = 4 + 4*16 + 4 + 4

// ResolveMaterial dereferences materialPtr as a GameMaterial (whose first
// field points at the VisualMaterial), then decodes the VisualMaterial.
func ResolveMaterial(mm *memmap.Context, materialPtr uint32) (*ResolvedMaterial, error) {
	gm, err := mm.Read(materialPtr, gameMaterialFixedSize)
	if err != nil {
		return nil, err
	}
	visualMaterialPtr := le32(gm)
	if visualMaterialPtr == 0 {
		return nil, ErrMalformed
	}
	return decodeVisualMaterial(mm, visualMaterialPtr)
}

func decodeVisualMaterial(mm *memmap.Context, addr uint32) (*ResolvedMaterial, error) {
	cur, err := mm.At(addr)
	if err != nil {
		return nil, err
	}
	raw, err := cur.Bytes(visualMaterialFixedSize)
	if err != nil {
		return nil, err
	}

	flags := le32(raw[0x00:])
	ambient := readVector4(raw[0x04:])
	diffuse := readVector4(raw[0x14:])
	specular := readVector4(raw[0x24:])
	base := readVector4(raw[0x34:])
	textureCount := le32(raw[0x44:])
	textureRefListPtr := le32(raw[0x48:])

	var names []string
	if textureRefListPtr != 0 && textureCount > 0 && textureCount < 64 {
		refCur, err := mm.At(textureRefListPtr)
		if err == nil {
			for i := uint32(0); i < textureCount; i++ {
				refRaw, err := refCur.Bytes(4)
				if err != nil {
					break
				}
				texInfoPtr := le32(refRaw)
				if texInfoPtr == 0 {
					continue
				}
				if name, err := readTextureInfoName(mm, texInfoPtr); err == nil {
					names = append(names, name)
				}
			}
		}
	}

	return &ResolvedMaterial{
		Flags:        flags,
		Ambient:      ambient,
		Diffuse:      diffuse,
		Specular:     specular,
		Base:         base,
		TextureNames: names,
	}, nil
}

func readVector4(b []byte) Vector4 {
	return Vector4{
		X: math.Float32frombits(le32(b[0x00:])),
		Y: math.Float32frombits(le32(b[0x04:])),
		Z: math.Float32frombits(le32(b[0x08:])),
		W: math.Float32frombits(le32(b[0x0C:])),
	}
}

func readTextureInfoName(mm *memmap.Context, addr uint32) (string, error) {
	raw, err := mm.Read(addr, textureInfoNameOffset+textureInfoNameMaxLen)
	if err != nil {
		// The name field may be closer to the end of a short block; retry
		// with just the minimum needed for a zero-length name.
		raw, err = mm.Read(addr, textureInfoNameOffset+1)
		if err != nil {
			return "", err
		}
	}
	nameBytes := raw[textureInfoNameOffset:]
	end := 0
	for end < len(nameBytes) && nameBytes[end] != 0 {
		end++
	}
	return string(nameBytes[:end]), nil
}
