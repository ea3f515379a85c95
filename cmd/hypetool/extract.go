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
	"os"
	"path/filepath"
	"strings"

	"github.com/undersampled/hypearchive/internal/imageio"
	"github.com/undersampled/hypearchive/lib/containers"
	"github.com/undersampled/hypearchive/lib/texture"
)

// doExtract implements the §6 extract subcommand: by default it converts
// CNT archives to per-entry PNG trees, BNM banks to per-entry WAV trees,
// and APM files to a single WAV in place; --raw copies bytes unmodified;
// --pattern restricts processing to paths containing the given substring.
func doExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	raw := fs.Bool("raw", RawDefault, RawUsage)
	pattern := fs.String("pattern", PatternDefault, PatternUsage)
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("extract: missing <source>")
	}

	output := OutputDefault
	if fs.NArg() >= 2 {
		output = fs.Arg(1)
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return err
	}

	p, closeFn, err := openProvider(fs.Arg(0))
	if err != nil {
		return err
	}
	defer closeFn()

	paths, err := p.List()
	if err != nil {
		return err
	}

	for _, path := range paths {
		if *pattern != "" && !strings.Contains(path, *pattern) {
			continue
		}
		data, err := readAll(p, path)
		if err != nil {
			return err
		}

		destDir := filepath.Join(output, filepath.Dir(path))
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return err
		}

		if *raw {
			if err := writeFile(destDir, filepath.Base(path), data); err != nil {
				return err
			}
			continue
		}

		if err := extractConverted(path, data, destDir); err != nil {
			fmt.Fprintf(os.Stderr, "extract: skipping %s: %v\n", path, err)
		}
	}
	return nil
}

func extractConverted(path string, data []byte, destDir string) error {
	switch strings.ToUpper(filepath.Ext(path)) {
	case ".CNT":
		return extractCNTTree(path, data, destDir)
	case ".BNM":
		return extractBNM(data, destDir)
	case ".APM":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return extractAPM(data, destDir, name)
	default:
		if png, ok := decodeAuxiliaryImage(data); ok {
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			return writeFile(destDir, name+".png", png)
		}
		return writeFile(destDir, filepath.Base(path), data)
	}
}

func extractCNTTree(cntPath string, data []byte, destDir string) error {
	archive, err := containers.ParseCNT(data)
	if err != nil {
		return err
	}
	for i, f := range archive.Files {
		fileBytes, err := archive.Extract(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "extract: skipping %s: %v\n", f.Name, err)
			continue
		}
		img, err := texture.Decode(fileBytes, textureOrientation(cntPath))
		if err != nil {
			fmt.Fprintf(os.Stderr, "extract: skipping %s: %v\n", f.Name, err)
			continue
		}
		var buf bytes.Buffer
		if err := imageio.WritePNG(&buf, img.Width, img.Height, img.RGBA); err != nil {
			return err
		}
		if err := writeFile(destDir, pngName(f.Name, i), buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
