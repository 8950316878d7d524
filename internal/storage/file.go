package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/staffdesk/staffdesk/internal/errors"
)

// FileStore persists all keys in a single JSON object of string values on disk
// with 0600 permissions. Writes go through a temp file and rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the file at path. The file is created
// lazily on the first Put.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) readAll() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read storage file", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageFailed, "storage file is corrupt", err).
			WithSuggestion("Remove " + f.path + " and log in again")
	}
	return values, nil
}

func (f *FileStore) writeAll(values map[string]string) error {
	if len(values) == 0 {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to remove storage file", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to create storage directory", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageFailed, "failed to encode storage file", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write storage file", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to replace storage file", err)
	}
	return nil
}

// Get returns the raw value for key. A corrupt file surfaces as an error so the
// caller can decide to discard it.
func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		return nil, err
	}
	value, ok := values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

// Put stores value under key.
func (f *FileStore) Put(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		// A corrupt file is replaced rather than blocking every later write.
		values = map[string]string{}
	}

	values[key] = string(value)
	return f.writeAll(values)
}

// Delete removes key. When the last key goes, the file is removed.
func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		// Unreadable content cannot hold a valid key; drop the file.
		return f.writeAll(nil)
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.writeAll(values)
}

// Close is a no-op.
func (f *FileStore) Close() error { return nil }
