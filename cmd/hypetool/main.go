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

// hypetool is a thin CLI adapter (§6) over the Hype: The Time Quest
// reverse-engineering core: disc/directory listing, archive extraction,
// and per-format decode-and-emit subcommands.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/undersampled/hypearchive/internal/diag"
)

// logger is the diagnostics sink handed to every decoded level's Memory Map
// (internal/diag is silent by default; the CLI is the one place that wants
// scan-mode fallbacks and skipped-record warnings on stderr).
var logger diag.Logger = log.New(os.Stderr, "hypetool: ", 0)

var commands = []struct {
	name string
	do   func(args []string) error
}{
	{"list", doList},
	{"extract", doExtract},
	{"textures", doTextures},
	{"audio", doAudio},
	{"meshes", doMeshes},
	{"scene", doScene},
	{"scripts", doScripts},
}

func usage() {
	fmt.Fprintf(os.Stderr, `hypetool is a tool for inspecting Hype: The Time Quest game data.

Usage:

	hypetool command [arguments]

The commands are:

	list      print every path in a disc image or directory
	extract   convert (or copy raw) every file in a source tree
	textures  decode a CNT texture archive to PNGs
	audio     decode an APM or BNM audio file/bank to WAV
	meshes    list geometric objects found in a level
	scene     print a level's scene graph hierarchy
	scripts   emit AI scripts as S-expressions
`)
}

func main() {
	if err := main1(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	for _, c := range commands {
		if args[0] == c.name {
			return c.do(args[1:])
		}
	}
	usage()
	os.Exit(1)
	return nil
}
