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

package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWritePCM16Header(t *testing.T) {
	samples := []int16{1, -1, 2, -2}
	var buf bytes.Buffer
	if err := WritePCM16(&buf, 22050, 2, samples); err != nil {
		t.Fatalf("WritePCM16: %v", err)
	}
	out := buf.Bytes()

	if string(out[0:4]) != "RIFF" || string(out[8:12]) != "WAVE" {
		t.Fatalf("missing RIFF/WAVE markers: %q", out[:12])
	}
	if string(out[12:16]) != "fmt " || string(out[36:40]) != "data" {
		t.Fatalf("missing fmt/data chunk ids: %q %q", out[12:16], out[36:40])
	}
	channels := binary.LittleEndian.Uint16(out[22:24])
	if channels != 2 {
		t.Fatalf("channels = %d, want 2", channels)
	}
	sampleRate := binary.LittleEndian.Uint32(out[24:28])
	if sampleRate != 22050 {
		t.Fatalf("sampleRate = %d, want 22050", sampleRate)
	}
	dataSize := binary.LittleEndian.Uint32(out[40:44])
	if dataSize != uint32(len(samples)*2) {
		t.Fatalf("dataSize = %d, want %d", dataSize, len(samples)*2)
	}
	if len(out) != 44+len(samples)*2 {
		t.Fatalf("total length = %d, want %d", len(out), 44+len(samples)*2)
	}

	first := int16(binary.LittleEndian.Uint16(out[44:46]))
	if first != 1 {
		t.Fatalf("first sample = %d, want 1", first)
	}
}
