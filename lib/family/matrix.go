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

package family

import (
	"errors"

	"github.com/undersampled/hypearchive/lib/memmap"
)

// ErrUnsupportedMatrixType is returned for a compressed matrix type&0xF
// this decoder does not recognise.
var ErrUnsupportedMatrixType = errors.New("family: unsupported compressed matrix type")

// Matrix is a decoded compressed transform: translation, rotation
// (quaternion, identity when absent) and scale (uniform or per-axis,
// unit when absent).
type Matrix struct {
	Translation [3]float32
	Rotation    [4]float32 // (w, x, y, z); identity is (1, 0, 0, 0).
	Scale       [3]float32 // unit is (1, 1, 1).
}

func identityMatrix() Matrix {
	return Matrix{Rotation: [4]float32{1, 0, 0, 0}, Scale: [3]float32{1, 1, 1}}
}

// DecodeCompressedMatrix reads the compressed matrix at addr. The type
// byte's low nibble (read as the first i16's low byte, per §4.8's table)
// selects the fields present; translation components 2 and 3 are always
// stored in Y/Z-swapped order relative to their natural (y, z) meaning,
// mirroring the on-disk (x, z, y) convention used elsewhere in the format
// (§4.7).
func DecodeCompressedMatrix(mm *memmap.Context, addr uint32) (Matrix, error) {
	cur, err := mm.At(addr)
	if err != nil {
		return Matrix{}, err
	}
	typeWord, err := cur.U16()
	if err != nil {
		return Matrix{}, err
	}
	matType := typeWord & 0xF

	m := identityMatrix()

	switch matType {
	case 1:
		t, err := readTranslationI16(&cur, 512)
		if err != nil {
			return Matrix{}, err
		}
		m.Translation = t

	case 2:
		r, err := readRotationI16(&cur)
		if err != nil {
			return Matrix{}, err
		}
		m.Rotation = r

	case 3:
		t, err := readTranslationI16(&cur, 512)
		if err != nil {
			return Matrix{}, err
		}
		r, err := readRotationI16(&cur)
		if err != nil {
			return Matrix{}, err
		}
		m.Translation, m.Rotation = t, r

	case 7:
		t, err := readTranslationI16(&cur, 512)
		if err != nil {
			return Matrix{}, err
		}
		r, err := readRotationI16(&cur)
		if err != nil {
			return Matrix{}, err
		}
		s, err := cur.I16()
		if err != nil {
			return Matrix{}, err
		}
		uniform := float32(s) / 256
		m.Translation, m.Rotation = t, r
		m.Scale = [3]float32{uniform, uniform, uniform}

	case 11:
		t, err := readTranslationI16(&cur, 512)
		if err != nil {
			return Matrix{}, err
		}
		r, err := readRotationI16(&cur)
		if err != nil {
			return Matrix{}, err
		}
		s, err := readScaleI16x3(&cur)
		if err != nil {
			return Matrix{}, err
		}
		m.Translation, m.Rotation, m.Scale = t, r, s

	case 15:
		t, err := readTranslationI16(&cur, 512)
		if err != nil {
			return Matrix{}, err
		}
		r, err := readRotationI16(&cur)
		if err != nil {
			return Matrix{}, err
		}
		// A 3x2 scale matrix (six i16 components); only the diagonal is
		// surfaced as a per-axis Scale, since §4.8 does not ask for the
		// off-diagonal shear terms in the decoded record.
		var diag [3]float32
		for i := 0; i < 3; i++ {
			v, err := cur.I16()
			if err != nil {
				return Matrix{}, err
			}
			diag[i] = float32(v) / 256
			if _, err := cur.I16(); err != nil { // discard the paired shear component.
				return Matrix{}, err
			}
		}
		m.Translation, m.Rotation, m.Scale = t, r, diag

	default:
		return Matrix{}, ErrUnsupportedMatrixType
	}

	return m, nil
}

// readTranslationI16 reads three i16 components divided by divisor. The
// on-disk order is (x, z, y); the result is the natural (x, y, z) order,
// the same axis swap convention used for vertex data (§4.7) and confirmed
// for this matrix format by the §8(f) worked example.
func readTranslationI16(cur *memmap.Cursor, divisor float32) ([3]float32, error) {
	x, err := cur.I16()
	if err != nil {
		return [3]float32{}, err
	}
	z, err := cur.I16()
	if err != nil {
		return [3]float32{}, err
	}
	y, err := cur.I16()
	if err != nil {
		return [3]float32{}, err
	}
	return [3]float32{float32(x) / divisor, float32(y) / divisor, float32(z) / divisor}, nil
}

func readRotationI16(cur *memmap.Cursor) ([4]float32, error) {
	var out [4]float32
	for i := 0; i < 4; i++ {
		v, err := cur.I16()
		if err != nil {
			return [4]float32{}, err
		}
		out[i] = float32(v) / 32767
	}
	return out, nil
}

func readScaleI16x3(cur *memmap.Cursor) ([3]float32, error) {
	var out [3]float32
	for i := 0; i < 3; i++ {
		v, err := cur.I16()
		if err != nil {
			return [3]float32{}, err
		}
		out[i] = float32(v) / 256
	}
	return out, nil
}
