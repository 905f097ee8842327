// Package fileid provides utilities for naming and discovering the numbered
// data files that make up an ignite store's directory.
//
// Filename Format: a FileID is the decimal ASCII representation of a
// uint32, e.g. "1", "42". Merge sidecar files append ".merge", e.g.
// "42.merge". Any directory entry whose name does not parse as a bare
// uint32 is ignored by the engine — this package's job is to tell the
// difference and to find the highest FileID currently on disk.
package fileid

import (
	"path/filepath"
	"sort"
	"strconv"

	"github.com/iamNilotpal/ignite/pkg/filesys"
)

// MergeSuffix is appended to a FileID to name its merge sidecar file.
const MergeSuffix = ".merge"

// Name returns the on-disk filename for a data file with the given ID.
func Name(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

// MergeName returns the on-disk filename for the merge sidecar of id.
func MergeName(id uint32) string {
	return Name(id) + MergeSuffix
}

// Parse attempts to interpret name as a bare FileID. ok is false for any
// name that is not purely decimal digits (including merge sidecars,
// dotfiles, and anything else a directory scan might turn up).
func Parse(name string) (id uint32, ok bool) {
	v, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// ParseMergeStem returns the FileID named by a ".merge" sidecar filename,
// e.g. ParseMergeStem("42.merge") == (42, true).
func ParseMergeStem(name string) (id uint32, ok bool) {
	ext := filepath.Ext(name)
	if ext != MergeSuffix {
		return 0, false
	}
	return Parse(name[:len(name)-len(ext)])
}

// All lists every FileID present in dir as a data file, ascending.
func All(dir string) ([]uint32, error) {
	entries, err := filesys.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	ids := make([]uint32, 0, len(entries))
	for _, entry := range entries {
		if id, ok := Parse(entry.Name()); ok {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// MergeFiles lists every ".merge" sidecar filename present in dir.
func MergeFiles(dir string) ([]string, error) {
	entries, err := filesys.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if _, ok := ParseMergeStem(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}
