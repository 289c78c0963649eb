package session

import (
	"context"
	"errors"
	"os"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

// failingStore wraps a MemoryStore and fails writes to one key. With once
// set only the first such write fails.
type failingStore struct {
	*MemoryStore
	failKey string
	once    bool
	failed  bool
}

var errStoreDown = errors.New("store down")

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if key == s.failKey && !(s.once && s.failed) {
		s.failed = true
		return errStoreDown
	}
	return s.MemoryStore.Set(ctx, key, value)
}
