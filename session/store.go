// Package session persists the access credential, refresh credential and
// cached user profile behind a small key-value Store.
package session

import (
	"context"
	"errors"
)

// Keys under which the session is persisted. Their presence is the session.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

var sessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// ErrKeyNotFound is returned by Store.Get for an absent key.
var ErrKeyNotFound = errors.New("session: key not found")

// Store is the persistent key-value store a session lives in. Writes are
// last-write-wins per key; no store offers transactions across keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Clear removes every application key.
	Clear(ctx context.Context) error
}
