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
	"os"

	"github.com/undersampled/hypearchive/lib/script"
)

func doScripts(args []string) error {
	fs := flag.NewFlagSet("scripts", flag.ExitOnError)
	limit := fs.Int("limit", LimitDefault, LimitUsage)
	raw := fs.Bool("raw", RawDefault, RawUsage)
	output := fs.String("output", "", OutputUsage)
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("scripts: missing <level-dir>")
	}

	lvl, err := openLevel(fs.Arg(0))
	if err != nil {
		return err
	}
	if *output != "" {
		if err := os.MkdirAll(*output, 0o755); err != nil {
			return err
		}
	}

	table := script.DefaultTypeTable()
	count := 0
	for _, block := range lvl.MM.Blocks() {
		candidates, err := script.ScanBlock(lvl.MM, block.Key(), table)
		if err != nil {
			return err
		}
		for _, c := range candidates {
			if *limit > 0 && count >= *limit {
				return nil
			}

			var text string
			if *raw {
				text = rawNodeDump(c.Nodes)
			} else {
				roots, err := script.BuildTree(c.Nodes)
				if err != nil {
					fmt.Fprintf(os.Stderr, "scripts: skipping 0x%08x: %v\n", c.Addr, err)
					continue
				}
				text = script.SExpr(roots, table)
			}

			if *output == "" {
				fmt.Printf("; script at 0x%08x\n%s\n\n", c.Addr, text)
			} else {
				name := fmt.Sprintf("script_%08x.txt", c.Addr)
				if err := writeFile(*output, name, []byte(text)); err != nil {
					return err
				}
			}
			count++
		}
	}
	return nil
}

func rawNodeDump(nodes []script.Node) string {
	out := ""
	for _, n := range nodes {
		out += fmt.Sprintf("indent=%d type=%d param=%d\n", n.Indent, n.Type, n.Param)
	}
	return out
}
