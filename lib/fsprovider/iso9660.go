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

package fsprovider

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"

	"github.com/kdomanski/iso9660"
)

// ISO9660 is a Provider over an ISO-9660-compliant disc image (§6).
type ISO9660 struct {
	file  *os.File
	image *iso9660.Image

	paths map[string]*iso9660.File
}

// OpenISO9660 opens the disc image at filename and indexes every regular
// file in it.
func OpenISO9660(filename string) (*ISO9660, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	img, err := iso9660.OpenImage(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	root, err := img.RootDir()
	if err != nil {
		f.Close()
		return nil, err
	}

	iso := &ISO9660{file: f, image: img, paths: make(map[string]*iso9660.File)}
	if err := iso.index("", root); err != nil {
		f.Close()
		return nil, err
	}
	return iso, nil
}

func (iso *ISO9660) index(prefix string, dir *iso9660.File) error {
	children, err := dir.GetChildren()
	if err != nil {
		return err
	}
	for _, c := range children {
		p := path.Join(prefix, c.Name())
		if c.IsDir() {
			if err := iso.index(p, c); err != nil {
				return err
			}
			continue
		}
		iso.paths[p] = c
	}
	return nil
}

// List returns every regular file's path in the image, sorted.
func (iso *ISO9660) List() ([]string, error) {
	paths := make([]string, 0, len(iso.paths))
	for p := range iso.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// Open returns a ReadCloser over path's bytes within the image.
func (iso *ISO9660) Open(filePath string) (io.ReadCloser, error) {
	f, ok := iso.paths[filePath]
	if !ok {
		return nil, fmt.Errorf("fsprovider: %q not found in image", filePath)
	}
	return io.NopCloser(f.Reader()), nil
}

// Close releases the underlying disc image file handle.
func (iso *ISO9660) Close() error {
	return iso.file.Close()
}
