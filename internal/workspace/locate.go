// Package workspace finds the repository root a hex-validate invocation
// should operate against.
package workspace

import (
	"os"
	"path/filepath"
)

// workspaceMarkers name files that identify a multi-package workspace root,
// checked before the generic single-package marker.
var workspaceMarkers = []string{
	"pnpm-workspace.yaml",
	"go.work",
}

// packageMarkers name files that identify a generic package root.
var packageMarkers = []string{
	"go.mod",
	"package.json",
}

// Locate walks upward from start looking for a workspace marker file; if
// none is found up to the filesystem root, it walks again looking for a
// generic package manifest. If neither is found, start is returned
// unchanged. Locate is pure and safe to call concurrently.
func Locate(start string) string {
	if found := walkUp(start, workspaceMarkers); found != "" {
		return found
	}
	if found := walkUp(start, packageMarkers); found != "" {
		return found
	}
	return start
}

func walkUp(start string, markers []string) string {
	dir := start
	for {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LocateFromCwd locates the workspace root starting from the process's
// current working directory.
func LocateFromCwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return Locate(cwd), nil
}
