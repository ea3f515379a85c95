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
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Directory is a Provider over a native directory tree — the counterpart to
// ISO9660 for game files already extracted onto disk.
type Directory struct {
	Root string
}

// NewDirectory returns a Provider rooted at root.
func NewDirectory(root string) *Directory {
	return &Directory{Root: root}
}

// List walks Root and returns every regular file's path, relative to Root,
// using forward slashes and sorted for deterministic output.
func (d *Directory) List() ([]string, error) {
	var paths []string
	err := filepath.Walk(d.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.Root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Open opens path (relative to Root) for reading.
func (d *Directory) Open(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.Root, filepath.FromSlash(path)))
}
