package kv

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// DiskStore is a Store backed by diskv, one file per key under a base directory.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskStore creates a DiskStore rooted at basePath.
// Writes go through a temp directory and are renamed into place.
// Reads are uncached so a long-running process sees writes made by other processes.
func NewDiskStore(basePath string) *DiskStore {
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  filepath.Join(basePath, ".tmp"),
		}),
		basePath: basePath,
	}
}

// BasePath returns the directory holding the stored keys.
func (s *DiskStore) BasePath() string {
	return s.basePath
}

// Get reads the value stored under key.
func (s *DiskStore) Get(key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

// Set replaces the value stored under key.
func (s *DiskStore) Set(key string, value []byte) error {
	return s.d.Write(key, value)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *DiskStore) Delete(key string) error {
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
