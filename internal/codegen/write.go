package codegen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// readExisting returns the content of path, or nil when it does not exist.
func readExisting(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// writeAtomic writes data to a temp file next to path and renames it over
// path, so a failed write never leaves a truncated source file.
func writeAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".modelgen-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp) //nolint:errcheck
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close() //nolint:errcheck
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
