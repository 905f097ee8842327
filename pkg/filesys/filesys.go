// Package filesys provides small, storage-engine-focused wrappers around
// common file system operations: directory creation, existence checks, and
// listing directory entries. It exists so that engine and merge code reads
// as domain logic rather than a mix of os.* calls and ad-hoc error wrapping.
package filesys

import (
	"errors"
	"os"
)

var (
	// ErrIsNotDir is returned when a path that was expected to be a
	// directory turns out to be a regular file.
	ErrIsNotDir = errors.New("path isn't a directory")
)

// CreateDir creates a directory at the specified path with the given
// permissions.
//
// If the directory already exists:
//   - If 'force' is true, it proceeds without error.
//   - If 'force' is false, it returns an error.
//
// It also returns an error if the existing path is a file (not a directory).
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if !force {
		if err == nil {
			return os.ErrExist
		}
		if !os.IsNotExist(err) {
			return err
		}
	}

	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	return os.Chmod(dirPath, permission)
}

// Exists checks if a file or directory at the given path exists.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ListFiles returns the regular files directly inside dirPath, skipping
// subdirectories and anything that isn't a plain file (sockets, symlinks
// to directories, etc). Directory entries are returned in the order the
// underlying os.ReadDir call yields them — callers that need a specific
// ordering (e.g. ascending FileID) must sort the result themselves.
func ListFiles(dirPath string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	files := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry)
		}
	}

	return files, nil
}
