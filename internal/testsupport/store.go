package testsupport

import (
	"context"
	"testing"

	"judder/internal/config"
	"judder/internal/rateset"
)

// MustOpenStore opens a rateset.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *rateset.Store {
	t.Helper()

	store, err := rateset.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("rateset.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
