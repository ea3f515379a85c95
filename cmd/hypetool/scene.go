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
	"strings"

	"github.com/undersampled/hypearchive/lib/scenegraph"
)

func doScene(args []string) error {
	fs := flag.NewFlagSet("scene", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("scene: missing <level-dir>")
	}

	lvl, err := openLevel(fs.Arg(0))
	if err != nil {
		return err
	}

	for _, root := range lvl.Scene.Roots {
		printSceneNode(lvl.Scene, root, 0)
	}
	return nil
}

func printSceneNode(g *scenegraph.Graph, index, depth int) {
	n := g.Nodes[index]
	fmt.Printf("%s%s data=0x%08x\n", strings.Repeat("  ", depth), sceneTypeName(n.Type), n.DataAddr)
	for _, child := range n.Children {
		printSceneNode(g, child, depth+1)
	}
}

func sceneTypeName(t scenegraph.TypeCode) string {
	switch t {
	case scenegraph.TypeWorld:
		return "World"
	case scenegraph.TypePerso:
		return "Perso"
	case scenegraph.TypeSector:
		return "Sector"
	case scenegraph.TypeIPO:
		return "IPO"
	case scenegraph.TypeIPO2:
		return "IPO2"
	default:
		return fmt.Sprintf("type-%d", t)
	}
}
