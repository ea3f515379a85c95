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

// Package diag provides a minimal, optional diagnostics sink for the decode
// packages under lib/.
//
// Decoders never log by default: a zero Logger is a no-op. Callers (chiefly
// cmd/hypetool) that want progress or warning output supply a Logger backed
// by the standard log package.
package diag

// Logger receives non-fatal diagnostics: skipped records, scan-mode
// fallbacks, degraded decodes. It is never required for correctness.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Discard is the zero-cost default Logger.
var Discard Logger = discard{}

type discard struct{}

func (discard) Printf(string, ...interface{}) {}

// Log calls l.Printf if l is non-nil, otherwise it is a no-op. Packages
// should accept a Logger field that may be left nil by the caller and use
// this helper rather than requiring Discard explicitly.
func Log(l Logger, format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Printf(format, args...)
}
