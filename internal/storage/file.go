package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmtool/bm/internal/bookmark"
)

// AppendFile appends b to the store file at path, creating the file if
// needed.
func AppendFile(path string, b bookmark.Bookmark) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening store file for append: %w", err)
	}

	if err := Append(f, b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing store file: %w", err)
	}
	return nil
}

// AppendAllFile appends each bookmark to the store file in order.
func AppendAllFile(path string, bookmarks []bookmark.Bookmark) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening store file for append: %w", err)
	}

	if err := Export(f, bookmarks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing store file: %w", err)
	}
	return nil
}

// LookupFile runs Lookup against the store file at path. A missing file
// reads as an empty store.
func LookupFile(path, key string) (bookmark.Bookmark, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bookmark.Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return bookmark.Bookmark{}, fmt.Errorf("opening store file: %w", err)
	}
	defer f.Close()

	return Lookup(f, key)
}

// SearchFile runs Search against the store file at path. A missing file
// yields an empty result.
func SearchFile(path string, q Query) ([]bookmark.Bookmark, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening store file: %w", err)
	}
	defer f.Close()

	return Search(f, q)
}

// DeleteFile rewrites the store file at path, omitting every record keyed
// key, and returns the number of lines removed. The rewrite streams into a
// temporary file in the same directory which replaces the original only
// after a clean pass, so a failure mid-rewrite leaves the store untouched.
func DeleteFile(path, key string) (int, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("opening store file: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".rewrite-*")
	if err != nil {
		return 0, fmt.Errorf("creating rewrite file: %w", err)
	}
	defer os.Remove(tmp.Name())

	removed, err := Delete(src, tmp, key)
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing rewrite file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("replacing store file: %w", err)
	}
	return removed, nil
}

// IsNotFound reports whether err means no record matched.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
