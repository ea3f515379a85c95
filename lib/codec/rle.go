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

// DecodeRLE decodes one texture channel's run-length-encoded stream: any
// byte other than repeatByte is emitted verbatim; repeatByte signals that
// the following two bytes are (value, count), meaning "emit value count
// times". Decoding stops as soon as pixelCount bytes have been produced,
// even mid-run, and consumed reports exactly how many input bytes were
// read to produce them — a multi-channel stream packs each channel's
// encoding back to back with no length prefix, so the caller needs this to
// find where the next channel's stream begins.
func DecodeRLE(in []byte, repeatByte byte, pixelCount int) (out []byte, consumed int) {
	out = make([]byte, 0, pixelCount)
	i := 0
	for i < len(in) && len(out) < pixelCount {
		b := in[i]
		if b != repeatByte {
			out = append(out, b)
			i++
			continue
		}
		if i+2 >= len(in) {
			break
		}
		value, count := in[i+1], int(in[i+2])
		i += 3
		for c := 0; c < count && len(out) < pixelCount; c++ {
			out = append(out, value)
		}
	}
	if len(out) > pixelCount {
		out = out[:pixelCount]
	}
	return out, i
}
