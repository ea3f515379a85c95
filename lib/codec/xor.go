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

// FixedInitMask is the initial mask state used by fixed-init number-mask
// streams, which do not consume a leading 4-byte seed from the input.
const FixedInitMask uint32 = 0x6AB5CC79

// NumberMaskReader decrypts a stream encrypted with the game's
// "number-mask" XOR cipher (a Park-Miller-style LCG driving the XOR key).
//
// Construct one with NewNumberMask or NewFixedNumberMask, then call Decode
// for every byte in order; the state is advanced as a side effect so bytes
// must be processed sequentially.
type NumberMaskReader struct {
	m uint32
}

// NewNumberMask reads the 4-byte little-endian seed from the front of in and
// returns a reader positioned to decode the remaining bytes, along with the
// number of header bytes consumed (always 4).
func NewNumberMask(in []byte) (*NumberMaskReader, int, error) {
	if len(in) < 4 {
		return nil, 0, malformed("codec.NewNumberMask", errTruncated)
	}
	return &NumberMaskReader{m: binary.LittleEndian.Uint32(in)}, 4, nil
}

// NewFixedNumberMask returns a reader seeded with FixedInitMask; it consumes
// no header bytes.
func NewFixedNumberMask() *NumberMaskReader {
	return &NumberMaskReader{m: FixedInitMask}
}

// Decode XOR-decrypts in, writing the result into a freshly allocated slice
// of the same length, and advances the internal LCG state by len(in) steps.
func (r *NumberMaskReader) Decode(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ byte(r.m>>8)
		r.advance()
	}
	return out
}

// advance steps the Park-Miller-variant LCG: m <- 16807*(m^k) - 0x7FFFFFFF*((m^k)/0x1F31D)
// where k = 0x075BD924, all evaluated modulo 2**32.
func (r *NumberMaskReader) advance() {
	x := r.m ^ 0x075BD924
	r.m = uint32(16807*uint64(x)) - uint32(0x7FFFFFFF*uint64(x/0x1F31D))
}

// windowOrig is the fixed seed for window-mode XOR masking.
var windowOrig = [10]byte{0x41, 0x59, 0xBE, 0xC7, 0x0D, 0x99, 0x1C, 0xA3, 0x75, 0x3F}

// WindowMaskReader decrypts the 10-byte sliding-key XOR cipher used by a
// minority of streams (§4.1 "Window mode").
type WindowMaskReader struct {
	key [10]byte
}

// NewWindowMask returns a reader with the key initialized to windowOrig.
func NewWindowMask() *WindowMaskReader {
	return &WindowMaskReader{key: windowOrig}
}

// Decode XOR-decrypts in against the sliding 10-byte key, updating the key
// after each byte as specified: key[k%10] <- (ORIG[k%10] + in[k]) & 0xFF.
func (r *WindowMaskReader) Decode(in []byte) []byte {
	out := make([]byte, len(in))
	for k, b := range in {
		j := k % 10
		out[k] = b ^ r.key[j]
		r.key[j] = byte(uint32(windowOrig[j]) + uint32(b))
	}
	return out
}

// StringXOR decrypts a container-header byte string with a single
// repeating key byte, independent of the number-mask cipher.
func StringXOR(in []byte, key byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ key
	}
	return out
}

// CyclicXOR4 decrypts in against a 4-byte cyclic key, as used by CNT file
// entries (§4.2).
func CyclicXOR4(in []byte, key [4]byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ key[i%4]
	}
	return out
}
