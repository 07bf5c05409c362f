// ABOUTME: Tests for the task-list cache
// ABOUTME: Covers nil-cache behavior and live Redis round trips when available

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2389/taskdeck/internal/store"
)

// newTestCache connects to the Redis address from the environment,
// skipping the test when none is configured.
func newTestCache(t *testing.T) *TaskCache {
	t.Helper()

	addr := os.Getenv("TASKDECK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TASKDECK_TEST_REDIS_ADDR not set")
	}

	c, err := New(addr, "", 0, time.Minute)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNilCache_IsNoop(t *testing.T) {
	var c *TaskCache
	ctx := context.Background()

	// All operations on a nil cache are safe no-ops
	if _, ok := c.Get(ctx, "user-1"); ok {
		t.Error("nil cache Get should miss")
	}
	c.Set(ctx, "user-1", []*store.Task{{ID: "task-1"}})
	c.Invalidate(ctx, "user-1")
	if err := c.Close(); err != nil {
		t.Errorf("nil cache Close should succeed, got %v", err)
	}
}

func TestKey(t *testing.T) {
	if got := key("user-1"); got != "tasks:user-1" {
		t.Errorf("key() = %q, want %q", got, "tasks:user-1")
	}
}

func TestCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	tasks := []*store.Task{
		{ID: "task-1", OwnerID: "user-1", Title: "Buy milk", Description: "2%"},
	}

	c.Invalidate(ctx, "user-1")
	if _, ok := c.Get(ctx, "user-1"); ok {
		t.Fatal("expected miss before Set")
	}

	c.Set(ctx, "user-1", tasks)

	got, ok := c.Get(ctx, "user-1")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if len(got) != 1 || got[0].Title != "Buy milk" {
		t.Errorf("Get() = %+v, want cached task list", got)
	}

	c.Invalidate(ctx, "user-1")
	if _, ok := c.Get(ctx, "user-1"); ok {
		t.Error("expected miss after Invalidate")
	}
}
