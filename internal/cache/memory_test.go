package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := mc.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q", got)
	}

	exists, err := mc.Exists(ctx, "k")
	if err != nil || !exists {
		t.Errorf("Exists = %v, %v", exists, err)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	if _, err := mc.Get(context.Background(), "missing"); err != ErrCacheMiss {
		t.Errorf("Get = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	mc.Set(ctx, "k", []byte("v"), -time.Second)

	if _, err := mc.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("expired key should miss, got %v", err)
	}
	if exists, _ := mc.Exists(ctx, "k"); exists {
		t.Error("expired key should not exist")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	mc.Set(ctx, "k", []byte("v"), time.Minute)
	if err := mc.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := mc.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("deleted key should miss, got %v", err)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := PDFKey(7); got != "cert:7:pdf" {
		t.Errorf("PDFKey = %q", got)
	}
	if got := IdempotencyKey(3, "abc"); got != "idem:3:abc" {
		t.Errorf("IdempotencyKey = %q", got)
	}
}
