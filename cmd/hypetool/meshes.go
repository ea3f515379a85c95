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

package main

import (
	"flag"
	"fmt"

	"github.com/undersampled/hypearchive/lib/geometry"
)

func doMeshes(args []string) error {
	fs := flag.NewFlagSet("meshes", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("meshes: missing <level-dir>")
	}

	lvl, err := openLevel(fs.Arg(0))
	if err != nil {
		return err
	}

	for _, block := range lvl.MM.Blocks() {
		candidates, err := geometry.ScanBlock(lvl.MM, block.Key())
		if err != nil {
			return err
		}
		for _, c := range candidates {
			fmt.Printf("0x%08x  module=%d id=%d  vertices=%d  elements=%d\n",
				c.Addr, block.Module, block.ID, len(c.Object.Vertices), len(c.Object.Elements))
		}
	}
	return nil
}
