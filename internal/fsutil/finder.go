// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFiles returns every regular file under rootPath matching the
// doublestar pattern (e.g. "**/*.{hcl,json}"). Paths are slash separated,
// relative to rootPath and sorted. A missing rootPath yields no files.
func FindFiles(rootPath, pattern string) ([]string, error) {
	if pattern == "" {
		panic("pattern must not be empty")
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error accessing path %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", rootPath)
	}

	matches, err := doublestar.Glob(os.DirFS(rootPath), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q in %s: %w", pattern, rootPath, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// SubDirs lists the immediate subdirectories of rootPath, skipping hidden
// and underscore-prefixed names. A missing rootPath yields none.
func SubDirs(rootPath string) ([]string, error) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		dirs = append(dirs, name)
	}
	sort.Strings(dirs)
	return dirs, nil
}
