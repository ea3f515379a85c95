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

// commonflags holds flag defaults and usage strings shared across
// hypetool's subcommands.
package main

const (
	OutputDefault = "."
	OutputUsage   = `directory to write decoded output into`

	LimitDefault = 0
	LimitUsage   = `maximum number of items to process (0 means no limit)`

	RawDefault = false
	RawUsage   = `copy/emit bytes as-is instead of decoding`

	PatternDefault = ""
	PatternUsage   = `only process paths containing this substring`
)
