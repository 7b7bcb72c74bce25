package storage

import (
	"context"
	"fmt"
	"strings"
)

const (
	BackendSQLite = backendSQLite
	BackendJSON   = backendJSON
	BackendRedis  = backendRedis
)

type Options struct {
	Backend string
	Path    string
	Redis   RedisOptions
}

// Open returns the KV for the configured backend. Path is the sqlite database or JSON
// file location and is ignored for redis.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendSQLite:
		return OpenSQLite(opts.Path)
	case BackendJSON:
		return OpenJSONFile(opts.Path)
	case BackendRedis:
		return OpenRedis(ctx, opts.Redis)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
