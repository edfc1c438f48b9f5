// Package storage provides the document blob store.
package storage

import (
	"io"
	"os"
	"path/filepath"
)

// Store abstracts where document blobs live. Keyed by the generated
// stored filename; existence is checked before streaming a download.
type Store interface {
	Save(name string, r io.Reader) error
	Open(name string) (io.ReadCloser, error)
	Exists(name string) bool
	Remove(name string) error
}

// DiskStore keeps blobs as plain files under a root directory.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) path(name string) string {
	// Stored names are generated UUIDs; Base guards against anything
	// path-like sneaking in.
	return filepath.Join(s.root, filepath.Base(name))
}

func (s *DiskStore) Save(name string, r io.Reader) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}

func (s *DiskStore) Open(name string) (io.ReadCloser, error) {
	return os.Open(s.path(name))
}

func (s *DiskStore) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

func (s *DiskStore) Remove(name string) error {
	return os.Remove(s.path(name))
}
