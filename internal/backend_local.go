package internal

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalBackend maps keys directly to filesystem paths under a root
// directory
type LocalBackend struct {
	root string
}

// NewLocalBackend creates a backend rooted at dir
func NewLocalBackend(dir string) *LocalBackend {
	return &LocalBackend{root: dir}
}

func (b *LocalBackend) path(key string) string {
	return filepath.Join(b.root, filepath.FromSlash(key))
}

// Put writes data under key, creating parent directories
func (b *LocalBackend) Put(key string, data []byte) error {
	path := b.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// Get reads the content stored under key
func (b *LocalBackend) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Kind: "key", Name: key}
		}
		return nil, &BackendError{Op: "get", Key: key, Err: err}
	}
	return data, nil
}

// List walks the tree under prefix and returns every key
func (b *LocalBackend) List(prefix string) ([]string, error) {
	root := b.path(prefix)
	var keys []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(b.root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &BackendError{Op: "list", Key: prefix, Err: err}
	}
	return keys, nil
}

// ListDirs returns the immediate subdirectories of prefix as key prefixes
func (b *LocalBackend) ListDirs(prefix string) ([]string, error) {
	entries, err := os.ReadDir(b.path(prefix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &BackendError{Op: "list", Key: prefix, Err: err}
	}

	base := prefix
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, base+entry.Name()+"/")
		}
	}
	return dirs, nil
}

// Download copies the object under key to dest
func (b *LocalBackend) Download(key, dest string) error {
	data, err := b.Get(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return &WriteError{Key: dest, Err: err}
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return &WriteError{Key: dest, Err: err}
	}
	return nil
}

// Identity returns the backend's root path
func (b *LocalBackend) Identity() string {
	abs, err := filepath.Abs(b.root)
	if err != nil {
		return b.root
	}
	return abs
}
