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
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/undersampled/hypearchive/internal/imageio"
	"github.com/undersampled/hypearchive/lib/containers"
	"github.com/undersampled/hypearchive/lib/texture"
)

// textureOrientation returns the decode options for the entries of the CNT
// archive at cntPath, per §4.5: entries from a Vignette.cnt (or already
// 640x480) are not flipped.
func textureOrientation(cntPath string) texture.DecodeOptions {
	return texture.DecodeOptions{SourceIsVignette: strings.Contains(strings.ToLower(cntPath), "vignette")}
}

func doTextures(args []string) error {
	fs := flag.NewFlagSet("textures", flag.ExitOnError)
	output := fs.String("output", OutputDefault, OutputUsage)
	limit := fs.Int("limit", LimitDefault, LimitUsage)
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("textures: missing <cnt>")
	}

	raw, err := ioutil.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	archive, err := containers.ParseCNT(raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*output, 0o755); err != nil {
		return err
	}

	count := 0
	for _, f := range archive.Files {
		if *limit > 0 && count >= *limit {
			break
		}
		data, err := archive.Extract(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "textures: skipping %s: %v\n", f.Name, err)
			continue
		}
		img, err := texture.Decode(data, textureOrientation(fs.Arg(0)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "textures: skipping %s: %v\n", f.Name, err)
			continue
		}

		var buf bytes.Buffer
		if err := imageio.WritePNG(&buf, img.Width, img.Height, img.RGBA); err != nil {
			return err
		}
		if err := writeFile(*output, pngName(f.Name, count), buf.Bytes()); err != nil {
			return err
		}
		count++
	}
	return nil
}

func pngName(base string, index int) string {
	if base == "" {
		base = "texture_" + strconv.Itoa(index)
	}
	return base + ".png"
}
