package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// configFileNames are the project config file names searched for, in
// order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configFileNames = []string{
	".leptomcp.yml",
	".leptomcp.yaml",
	"leptomcp.yml",
	"leptomcp.yaml",
}

// vcsRootMarkers are directories that indicate a repository root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// maxSearchLevels bounds the upward config search.
const maxSearchLevels = 10

// FindProjectConfig searches upward from startDir for a project config
// file. The search stops at a VCS root, the home directory, the
// filesystem root, or after maxSearchLevels parents. A missing config
// is not an error; the path is empty.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	// Without a home dir the home boundary check is skipped.
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	for range maxSearchLevels {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		// A VCS root or the home directory bounds the project.
		if isVCSRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}

	return "", nil
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
