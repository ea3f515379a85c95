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

// Package fsprovider implements the "opaque file provider" capability §6
// specifies as the core's only I/O boundary: list() -> []path and
// open(path) -> byte_stream. Disc-image extraction, CLI argument handling,
// and similar concerns are deliberately out of scope (§1) and live here only
// as this thin adapter.
package fsprovider

import "io"

// Provider lists paths and opens byte streams for them. Both concrete
// implementations (ISO9660, Directory) satisfy this with no shared state
// between List and Open calls, so a Provider may be used from multiple
// goroutines as long as each goroutine calls Open for its own path.
type Provider interface {
	// List returns every path the provider can Open, in an implementation-
	// defined but stable order.
	List() ([]string, error)

	// Open returns a byte stream for path. The caller must Close it.
	Open(path string) (io.ReadCloser, error)
}
