// Package pathresolve expands explicit path arguments (files or
// directories) into a deduplicated, ordered list of files.
package pathresolve

import (
	"os"
	"path/filepath"
	"strings"
)

// depDirs names conventional dependency directories skipped during
// recursive directory walks.
var depDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// Resolve expands each of paths (absolute or cwd-relative) into a
// deduplicated file list, preserving first-seen order. Directories are
// walked recursively, skipping dot-directories and conventional
// dependency directories; files are included verbatim.
func Resolve(cwd string, paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(p string) {
		if seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cwd, abs)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(abs)
			continue
		}

		err = filepath.Walk(abs, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				name := fi.Name()
				if path != abs && (strings.HasPrefix(name, ".") || depDirs[name]) {
					return filepath.SkipDir
				}
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
