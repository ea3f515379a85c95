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

import "encoding/binary"

// DialogueLine is one decoded DLG entry: a speaker (a Perso id resolved
// against the scene graph), a line_id into an LNG Table, and the id of
// the line that follows it in conversation order (-1 terminates a
// branch).
type DialogueLine struct {
	SpeakerPersoID int32
	LineID         uint32
	NextID         int32
}

const dlgRecordSize = 12

// DecodeDLG parses a flat array of {speaker_perso_id:i32, line_id:u32,
// next_id:i32} records with no header of their own — DLG is a bare
// array sized by the caller's directory/file-table entry, the same
// framing CNT entries already establish for other typed arrays (§4.2).
func DecodeDLG(raw []byte) []DialogueLine {
	n := len(raw) / dlgRecordSize
	lines := make([]DialogueLine, n)
	for i := 0; i < n; i++ {
		off := i * dlgRecordSize
		lines[i] = DialogueLine{
			SpeakerPersoID: int32(binary.LittleEndian.Uint32(raw[off : off+4])),
			LineID:         binary.LittleEndian.Uint32(raw[off+4 : off+8]),
			NextID:         int32(binary.LittleEndian.Uint32(raw[off+8 : off+12])),
		}
	}
	return lines
}
