package internal

import (
	"errors"
	"os"
)

// EnsureDir makes sure dir exists. An already existing directory is not an
// error; created reports whether this call made it.
func EnsureDir(dir string) (created bool, err error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, &StorageError{Path: dir, Op: "mkdir", Err: errors.New("not a directory")}
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, &StorageError{Path: dir, Op: "stat", Err: err}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, &StorageError{Path: dir, Op: "mkdir", Err: err}
	}
	return true, nil
}

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
