// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthrun

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// runsDir is the name of the directory that holds run directories.
const runsDir = "runs"

// Discover walks the tree rooted at root and returns the run
// directories in it, in lexical order. A run directory is a directory
// directly inside a directory named "runs" whose name begins with
// marker followed by "_". Discover does not descend into run
// directories, and subtrees that cannot be read are skipped.
func Discover(root, marker string) ([]string, error) {
	prefix := marker + "_"
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) == runsDir && strings.HasPrefix(d.Name(), prefix) {
			dirs = append(dirs, path)
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
