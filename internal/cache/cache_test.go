package cache

import (
	"testing"
	"time"
)

func TestLRUSetGetDelete(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d,%v", v, ok)
	}

	// "a" was just used, so adding "c" evicts "b".
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("a should survive eviction, got %d,%v", v, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected a to be deleted")
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[string](10, 10*time.Millisecond)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to expire")
	}
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if n := c.CleanExpired(); n != 1 {
		t.Fatalf("CleanExpired = %d, want 1", n)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d after cleanup", c.Size())
	}
}

func TestLRUPurge(t *testing.T) {
	c := NewLRU[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()
	if c.Size() != 0 {
		t.Fatalf("size = %d after purge", c.Size())
	}
}
