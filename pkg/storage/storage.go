// Package storage defines the key-value contract behind persisted carts.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get when no value is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// KV is the minimal surface a persistence backend must provide.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger exposes the readiness check of a remote backend.
type Pinger interface {
	Ping(ctx context.Context) error
}
