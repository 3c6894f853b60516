// ABOUTME: File settings store reading a JSON document that may carry comments
// ABOUTME: Writes replace the file with plain indented JSON

package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/jsonc"

	coreerrors "linkoff-engine/core/errors"
	"linkoff-engine/infrastructure/settings"
)

const backend = "file"

// Store implements the settings store on a local JSON file.
type Store struct {
	path      string
	mu        sync.Mutex
	listeners settings.Listeners
}

// NewStore returns a store for path. The file is created on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored values for keys; missing keys are omitted.
func (s *Store) Get(ctx context.Context, keys []string) (map[string]any, error) {
	s.mu.Lock()
	all, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return nil, &coreerrors.StoreError{Backend: backend, Op: "get", Err: err}
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Set merges values into the file and notifies listeners of the keys
// that changed.
func (s *Store) Set(ctx context.Context, values map[string]any) error {
	s.mu.Lock()
	all, err := s.read()
	if err != nil {
		s.mu.Unlock()
		return &coreerrors.StoreError{Backend: backend, Op: "set", Err: err}
	}
	changes := settings.Diff(all, values)
	for k, v := range changes {
		all[k] = v
	}
	if len(changes) > 0 {
		err = s.write(all)
	}
	s.mu.Unlock()
	if err != nil {
		return &coreerrors.StoreError{Backend: backend, Op: "set", Err: err}
	}

	s.listeners.Notify(changes)
	return nil
}

// OnChanged registers fn for change notifications.
func (s *Store) OnChanged(fn func(map[string]any)) func() {
	return s.listeners.Add(fn)
}

func (s *Store) read() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, err
	}

	all := make(map[string]any)
	if err := json.Unmarshal(jsonc.ToJSON(data), &all); err != nil {
		return nil, err
	}
	return all, nil
}

// write replaces the file atomically.
func (s *Store) write(all map[string]any) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
