// Package storage holds the durable per-client key-value stores that back
// sessions and theme preferences.
package storage

import (
	"context"
	"errors"
	"net/http"
)

// ErrUnavailable is returned when a backend cannot be reached.
var ErrUnavailable = errors.New("storage unavailable")

// KV is a durable string key-value store scoped to one client.
// Get reports ok=false for an absent key. Delete of an absent key is not an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RequestScoped resolves the client store for a single HTTP request.
type RequestScoped interface {
	ForRequest(w http.ResponseWriter, r *http.Request) (KV, error)
}
