package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Supported texture file extensions (lowercase, with leading dot).
var textureExtensions = map[string]bool{
	".dds": true,
}

// Discover walks inputDir, collects files with texture extensions, and
// returns their paths relative to inputDir (slash form), sorted
// lexicographically. The sorted relative paths are the batch's identity:
// manifest order and record identity both derive from them, so runs are
// reproducible across machines.
func Discover(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !textureExtensions[ext] {
			return nil
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
