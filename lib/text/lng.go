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

// Package text decodes LNG localized text tables: a flat array of
// null-terminated, optionally XOR-masked strings indexed by integer id,
// read by dialogue (DLG) and by the AI script emitter's text_N params
// (§4.9).
package text

import (
	"bytes"
	"errors"

	"github.com/undersampled/hypearchive/lib/codec"
)

// ErrMalformed is returned when the table's last string has no NUL
// terminator.
var ErrMalformed = errors.New("text: malformed table")

// Table is a decoded LNG text table, indexable by the string id a
// script's text_N param or a DLG line_id refers to.
type Table struct {
	Strings []string
}

// At returns the string for id, or "" with ok == false if id is out of
// range.
func (t Table) At(id uint32) (string, bool) {
	if int(id) >= len(t.Strings) {
		return "", false
	}
	return t.Strings[id], true
}

// DecodeLNG parses every null-terminated byte string in raw, in order;
// there is no count header. When xorKey != 0 each string is decrypted with
// codec.StringXOR after the terminator scan (the NUL terminator itself is
// stored unmasked), matching the container
// header's "String XOR" mode (§4.1): independent of the number mask,
// each byte is in XOR key.
func DecodeLNG(raw []byte, xorKey byte) (*Table, error) {
	var strs []string
	pos := 0
	for pos < len(raw) {
		end := bytes.IndexByte(raw[pos:], 0)
		if end < 0 {
			return nil, ErrMalformed
		}
		chunk := raw[pos : pos+end]
		if xorKey != 0 {
			chunk = codec.StringXOR(chunk, xorKey)
		}
		strs = append(strs, string(chunk))
		pos += end + 1
	}
	return &Table{Strings: strs}, nil
}
