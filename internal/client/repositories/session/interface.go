// Package session persists the signed-in session across program runs: a
// small key/value table holding the auth token and user identity.
package session

import "context"

// Repository is durable local storage for session state.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
