package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
	ErrClosed         = errors.New("storage: closed")
)

// KV is the flat string key-value store behind every persisted setting.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete returns ErrNotFound when the key is absent.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Change reports keys whose stored value was modified outside this process.
type Change struct {
	Keys []string
}

// Watcher is implemented by backends that can observe external edits.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Change, error)
}

type OpError struct {
	Op      string
	Backend string
	Key     string
	Err     error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Backend, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(backend, op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Backend: backend, Key: key, Err: err}
}
