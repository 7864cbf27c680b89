// Package kv is the persistence medium: single-key get/set/delete over a
// pluggable backend. The document store above it only ever touches whole
// values, so this is the entire surface it needs.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for an absent key.
var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}
