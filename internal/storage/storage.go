// Package storage provides the JSON key-value store that backs the cart and
// order stores. Values are opaque JSON documents keyed by string, mirroring
// the single-namespace layout the stores were designed around.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Well-known keys. Carts are per-session: CartKey(sid) derives the key.
const (
	OrdersKey     = "orders"
	cartKeyPrefix = "cart:"
)

// CartKey returns the storage key for a session's cart.
func CartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// KV is a synchronous key-value store. Put must be durable before it returns:
// a Get issued after a successful Put observes the written value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
