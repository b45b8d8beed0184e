package sqlite

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"digests-reader/core/interfaces"
)

type mockLogger struct {
	mu       sync.Mutex
	warnings []map[string]interface{}
}

func (ml *mockLogger) Warn(msg string, fields map[string]interface{}) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.warnings = append(ml.warnings, fields)
}

func newTestClient(t *testing.T, opts ...Option) (*Client, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	client, err := NewSQLiteCache(path, opts...)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client, path
}

func TestClient_SetGetDelete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := client.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get() = %s, want value", got)
	}

	if err := client.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := client.Get(ctx, "key"); !errors.Is(err, interfaces.ErrKeyNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrKeyNotFound", err)
	}
}

func TestClient_ZeroTTLNeverExpires(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "settings:selected_source", []byte(`{"title":"a"}`), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	client.cleanup()

	got, err := client.Get(ctx, "settings:selected_source")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"title":"a"}` {
		t.Errorf("Get() = %s", got)
	}
}

func TestClient_ExpiredEntries(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Minute).Unix()
	if _, err := client.db.Exec(client.queries.set, "old", []byte("stale"), past); err != nil {
		t.Fatal(err)
	}

	if _, err := client.Get(ctx, "old"); !errors.Is(err, interfaces.ErrKeyNotFound) {
		t.Errorf("Get() expired error = %v, want ErrKeyNotFound", err)
	}

	stats, err := client.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats["expired_entries"] != 1 {
		t.Errorf("expired_entries = %v, want 1", stats["expired_entries"])
	}

	client.cleanup()

	stats, _ = client.Stats()
	if stats["total_entries"] != 0 {
		t.Errorf("total_entries after cleanup = %v, want 0", stats["total_entries"])
	}
}

func TestClient_PersistsAcrossReopen(t *testing.T) {
	client, path := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "key", []byte("persisted"), 0); err != nil {
		t.Fatal(err)
	}
	if err := client.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "persisted" {
		t.Errorf("Get() = %s, want persisted", got)
	}
}

func TestClient_TablesAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")
	ctx := context.Background()

	settings, err := NewSQLiteCache(path, WithTable("settings"))
	if err != nil {
		t.Fatal(err)
	}
	defer settings.Close()

	if err := settings.Set(ctx, "key", []byte("from settings"), 0); err != nil {
		t.Fatal(err)
	}
	settings.Close()

	feeds, err := NewSQLiteCache(path, WithTable("feed_cache"))
	if err != nil {
		t.Fatal(err)
	}
	defer feeds.Close()

	if _, err := feeds.Get(ctx, "key"); !errors.Is(err, interfaces.ErrKeyNotFound) {
		t.Errorf("feed table saw settings entry: %v", err)
	}
}

func TestClient_InvalidTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	for _, table := range []string{"", "cache; DROP TABLE x", "1cache", strings.Repeat("a", 65)} {
		if _, err := NewSQLiteCache(path, WithTable(table)); err == nil {
			t.Errorf("NewSQLiteCache(table=%q) should fail", table)
		}
	}
}

func TestClient_InjectionKeysRoundTrip(t *testing.T) {
	logger := &mockLogger{}
	client, _ := newTestClient(t, WithLogger(logger))
	ctx := context.Background()

	keys := []string{
		"key'; DROP TABLE cache; --",
		"key' OR '1'='1",
		"key' UNION SELECT null, null, null--",
		"key'/**/OR/**/1=1--",
		"key\nwith\nnewlines",
	}

	for _, key := range keys {
		value := []byte("value for " + key)
		if err := client.Set(ctx, key, value, time.Hour); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
		got, err := client.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", key, err)
		}
		if !bytes.Equal(got, value) {
			t.Errorf("Get(%q) = %q, want %q", key, got, value)
		}
	}

	if _, err := client.Get(ctx, "key"); !errors.Is(err, interfaces.ErrKeyNotFound) {
		t.Errorf("injection leaked a row: %v", err)
	}
	if len(logger.warnings) == 0 {
		t.Error("suspicious keys should have been logged")
	}
}

func TestClient_BinaryValues(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	if err := client.Set(ctx, "binary", all, time.Hour); err != nil {
		t.Fatal(err)
	}
	got, err := client.Get(ctx, "binary")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, all) {
		t.Error("binary value was altered")
	}
}

func TestClient_Clear(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_ = client.Set(ctx, "a", []byte("1"), 0)
	_ = client.Set(ctx, "b", []byte("2"), time.Hour)

	if err := client.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	stats, _ := client.Stats()
	if stats["total_entries"] != 0 {
		t.Errorf("total_entries = %v, want 0", stats["total_entries"])
	}
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	client, _ := newTestClient(t, WithCleanupInterval(time.Millisecond))

	if err := client.Close(); err != nil {
		t.Fatal(err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
