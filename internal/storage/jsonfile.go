package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const backendJSON = "json"

// JSONFileKV keeps every key in one JSON object file, rewritten atomically on each Set.
type JSONFileKV struct {
	path string

	mu        sync.Mutex
	values    map[string]string
	lastWrite []byte
	closed    bool
}

func OpenJSONFile(path string) (*JSONFileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, wrapErr(backendJSON, "open", "", err)
	}
	s := &JSONFileKV{path: path, values: map[string]string{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, wrapErr(backendJSON, "open", "", err)
	}
	values, err := decodeValues(data)
	if err != nil {
		return nil, wrapErr(backendJSON, "open", "", err)
	}
	s.values = values
	s.lastWrite = data
	return s, nil
}

func (s *JSONFileKV) Path() string {
	return s.path
}

func (s *JSONFileKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, wrapErr(backendJSON, "get", key, ErrClosed)
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *JSONFileKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return wrapErr(backendJSON, "set", key, ErrClosed)
	}
	prev, had := s.values[key]
	s.values[key] = value
	if err := s.flushLocked(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return wrapErr(backendJSON, "set", key, err)
	}
	return nil
}

func (s *JSONFileKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return wrapErr(backendJSON, "delete", key, ErrClosed)
	}
	prev, had := s.values[key]
	if !had {
		return wrapErr(backendJSON, "delete", key, ErrNotFound)
	}
	delete(s.values, key)
	if err := s.flushLocked(); err != nil {
		s.values[key] = prev
		return wrapErr(backendJSON, "delete", key, err)
	}
	return nil
}

func (s *JSONFileKV) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Watch emits a Change whenever the file is rewritten by another process. Writes made
// through this store are not reported.
func (s *JSONFileKV) Watch(ctx context.Context) (<-chan Change, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, wrapErr(backendJSON, "watch", "", err)
	}
	// Atomic renames replace the file, so watch the directory and filter by name.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return nil, wrapErr(backendJSON, "watch", "", err)
	}

	out := make(chan Change, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				keys, changed := s.reload()
				if !changed {
					continue
				}
				select {
				case out <- Change{Keys: keys}:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}

// reload re-reads the file and returns the keys whose values differ from memory. The read
// happens under s.mu so a snapshot can never predate the last flush.
func (s *JSONFileKV) reload() ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	data, err := os.ReadFile(s.path)
	if err != nil || len(bytes.TrimSpace(data)) == 0 || bytes.Equal(data, s.lastWrite) {
		return nil, false
	}
	values, err := decodeValues(data)
	if err != nil {
		return nil, false
	}
	keys := diffKeys(s.values, values)
	s.values = values
	s.lastWrite = data
	return keys, len(keys) > 0
}

func (s *JSONFileKV) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "pomobubby-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		return err
	}
	s.lastWrite = data
	return nil
}

func decodeValues(data []byte) (map[string]string, error) {
	values := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return values, nil
}

func diffKeys(before, after map[string]string) []string {
	keys := make([]string, 0)
	for k, v := range after {
		if old, ok := before[k]; !ok || old != v {
			keys = append(keys, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
