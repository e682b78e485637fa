// Package fileutil writes hdkit state files without leaving partial content
// behind.
package fileutil

import (
	"os"
	"path/filepath"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// DirPerm is the mode used for directories created by WriteAtomic.
const DirPerm os.FileMode = 0o750

// WriteAtomic replaces path with data. The content goes to a temp file in
// the same directory, is synced, then renamed over path, so readers see
// either the old file or the new one. Missing parent directories are
// created with DirPerm.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return kiterr.WithSuggestion(kiterr.ErrInvalidInput, "file path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return kiterr.Wrap(err, "creating %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return kiterr.Wrap(err, "creating temp file")
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return kiterr.Wrap(err, "writing %s", tmpPath)
	}
	if err := tmp.Chmod(perm); err != nil {
		return kiterr.Wrap(err, "setting permissions on %s", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		return kiterr.Wrap(err, "syncing %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return kiterr.Wrap(err, "closing %s", tmpPath)
	}

	if err := os.Rename(tmpPath, path); err != nil { //nolint:gosec // G703: path comes from config resolution
		return kiterr.Wrap(err, "replacing %s", path)
	}

	if d, err := os.Open(dir); err == nil { //nolint:gosec // G304: dir is derived from path
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
