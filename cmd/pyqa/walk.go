package main

import (
	"io/fs"
	"path/filepath"
)

// Directories the wrapped tools also skip. Walking into a venv or an
// interpreter cache would inflate the file count the check commands
// report compared with what the tools actually touch.
var defaultSkipDirs = map[string]struct{}{
	"__pycache__":   {},
	".git":          {},
	".svn":          {},
	".hg":           {},
	".tox":          {},
	".mypy_cache":   {},
	".pytest_cache": {},
	"venv":          {},
	".venv":         {},
	"env":           {},
	"node_modules":  {},
	"dist":          {},
	"build":         {},
}

type WalkOptions struct {
	SkipDirs   map[string]struct{}
	Extensions []string
}

func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		SkipDirs: defaultSkipDirs,
	}
}

func WalkFiles(root string, opts WalkOptions, callback func(path string, entry fs.DirEntry) error) error {
	skipDirs := opts.SkipDirs
	if skipDirs == nil {
		skipDirs = defaultSkipDirs
	}

	extSet := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extSet[ext] = struct{}{}
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if _, skip := skipDirs[entry.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		if len(extSet) > 0 {
			ext := filepath.Ext(path)
			if _, ok := extSet[ext]; !ok {
				return nil
			}
		}

		return callback(path, entry)
	})
}

func FindFilesByExtension(root string, extensions ...string) ([]string, error) {
	var files []string
	opts := DefaultWalkOptions()
	opts.Extensions = extensions

	err := WalkFiles(root, opts, func(path string, _ fs.DirEntry) error {
		files = append(files, path)
		return nil
	})

	return files, err
}

// FindPythonFiles walks root and returns the Python sources the
// formatter and linter will see.
func FindPythonFiles(root string) ([]string, error) {
	return FindFilesByExtension(root, ".py")
}
