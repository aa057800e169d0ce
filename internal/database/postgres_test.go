package database

import (
	"context"
	"errors"
	"testing"
)

// TestNewPostgres covers the failure paths that need no running server.
// Round-trip behavior is covered by the SQLite engine tests; both engines
// share the upsert path and bind identical columns.
func TestNewPostgres(t *testing.T) {
	t.Parallel()

	t.Run("rejects a malformed connection string", func(t *testing.T) {
		t.Parallel()

		if _, err := NewPostgres(context.Background(), "definitely not a dsn"); err == nil {
			t.Error("expected error for malformed connection string")
		}
	})

	t.Run("gives up when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		dsn := "host=127.0.0.1 port=1 user=p24 dbname=p24 sslmode=disable connect_timeout=1"
		_, err := NewPostgres(ctx, dsn)
		if err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
