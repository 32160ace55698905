package cache

import (
	"strings"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	key := CacheKey("https://www.nature.com/nphoton")
	if !strings.HasPrefix(key, "exordium:v1:") {
		t.Errorf("expected namespaced key, got %s", key)
	}

	// Same URL, same key; different URL, different key.
	if key != CacheKey("https://www.nature.com/nphoton") {
		t.Error("expected stable keys for the same URL")
	}
	if key == CacheKey("https://www.nature.com/ncomms") {
		t.Error("expected distinct keys for distinct URLs")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("page body"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found {
		t.Fatal("expected hit after set")
	}
	if string(val) != "page body" {
		t.Errorf("expected page body, got %s", val)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("cached"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found {
		t.Fatal("expected hit after set")
	}
	if string(val) != "cached" {
		t.Errorf("expected cached, got %s", val)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestDiskCache_Clear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after clear")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	// Seed only the disk layer, simulating a previous run.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set("k", []byte("persisted"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	val, found := c.Get("k")
	if !found {
		t.Fatal("expected layered hit from disk")
	}
	if string(val) != "persisted" {
		t.Errorf("expected persisted, got %s", val)
	}

	// After promotion the memory layer must answer on its own.
	mem, found := c.memory.Get("k")
	if !found {
		t.Fatal("expected promotion into memory")
	}
	if string(mem) != "persisted" {
		t.Errorf("expected promoted value, got %s", mem)
	}
}

func TestLayeredCache_WriteThrough(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("both"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// A fresh disk cache over the same directory sees the entry.
	disk := NewDiskCache(dir, time.Minute)
	val, found := disk.Get("k")
	if !found {
		t.Fatal("expected write-through to disk")
	}
	if string(val) != "both" {
		t.Errorf("expected both, got %s", val)
	}
}
