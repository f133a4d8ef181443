package services

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore is the storage collaborator for uploaded media: avatar images
// and files embedded in rich-text fields. Paths returned by Store are the
// ones later passed to Delete and embedded in markup.
type FileStore interface {
	Store(name string, data []byte) (string, error)
	Delete(path string) error
}

// DiskStore stores files under a media root on the local filesystem.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) DiskStore {
	return DiskStore{root: root}
}

func (s DiskStore) Store(name string, data []byte) (string, error) {
	name = strings.TrimPrefix(name, "/")
	fullPath := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// Delete removes a stored file. Deleting a path that no longer exists is a
// no-op.
func (s DiskStore) Delete(path string) error {
	path = strings.TrimPrefix(path, "/")
	err := os.Remove(filepath.Join(s.root, path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
