// Package store provides the durable key-value facility entries are
// persisted to. Every backend stores opaque string values under string keys.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// KV is the durable key-value storage contract.
type KV interface {
	// Load returns the value stored under key. ok is false when the key is
	// absent; err is reserved for backend failures.
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	// Save overwrites the value stored under key.
	Save(ctx context.Context, key, value string) error
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendDiskv    Backend = "diskv"
	BackendSQLite   Backend = "sqlite"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
	BackendMemory   Backend = "memory"
)

var ErrUnknownBackend = errors.New("store: unknown backend")

// Backends lists every supported backend.
func Backends() []Backend {
	return []Backend{BackendDiskv, BackendSQLite, BackendRedis, BackendPostgres, BackendMongo, BackendMemory}
}

func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Backends() {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownBackend, s)
}

// Open creates the KV selected by opts.Backend.
func Open(ctx context.Context, opts Options) (KV, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("store: invalid options: %w", err)
	}
	var (
		kv  KV
		err error
	)
	switch opts.Backend {
	case BackendDiskv:
		kv, err = NewDiskv(opts.Path)
	case BackendSQLite:
		kv, err = OpenSQLite(ctx, opts.SQLite.Path)
	case BackendRedis:
		kv, err = OpenRedis(ctx, opts.Redis)
	case BackendPostgres:
		kv, err = OpenPostgres(ctx, opts.Postgres)
	case BackendMongo:
		kv, err = OpenMongo(ctx, opts.Mongo)
	case BackendMemory:
		kv = NewMemory()
	default:
		err = fmt.Errorf("%w %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return kv, nil
}
