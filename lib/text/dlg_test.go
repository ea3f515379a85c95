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

package text

import (
	"encoding/binary"
	"testing"
)

func TestDecodeDLG(t *testing.T) {
	raw := make([]byte, dlgRecordSize*2)
	binary.LittleEndian.PutUint32(raw[0:4], uint32(int32(3)))
	binary.LittleEndian.PutUint32(raw[4:8], 10)
	binary.LittleEndian.PutUint32(raw[8:12], uint32(int32(1)))

	minusOne := int32(-1)
	binary.LittleEndian.PutUint32(raw[12:16], uint32(minusOne))
	binary.LittleEndian.PutUint32(raw[16:20], 11)
	binary.LittleEndian.PutUint32(raw[20:24], uint32(minusOne))

	lines := DecodeDLG(raw)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].SpeakerPersoID != 3 || lines[0].LineID != 10 || lines[0].NextID != 1 {
		t.Fatalf("lines[0] = %+v, unexpected", lines[0])
	}
	if lines[1].SpeakerPersoID != -1 || lines[1].NextID != -1 {
		t.Fatalf("lines[1] = %+v, unexpected", lines[1])
	}
}
