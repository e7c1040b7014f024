package cache

import (
	"context"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	type input struct {
		Budget   int64
		Strategy string
	}

	a, err := Key("plan", input{Budget: 50000, Strategy: "avalanche"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := Key("plan", input{Budget: 50000, Strategy: "avalanche"})
	c, _ := Key("plan", input{Budget: 50001, Strategy: "avalanche"})

	if a != b {
		t.Errorf("equal inputs produced different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different inputs produced the same key")
	}
	if a[:5] != "plan:" {
		t.Errorf("expected namespace prefix, got %s", a)
	}

	if _, err := Key("plan", make(chan int)); err == nil {
		t.Error("expected error for unencodable input")
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		c := NewMemoryCache(10)
		if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
			t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
		}
		if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, ok, _ := c.Get(ctx, "k")
		if !ok || string(got) != "v" {
			t.Errorf("Get() = %q, %v", got, ok)
		}
	})

	t.Run("expired entries are dropped", func(t *testing.T) {
		c := NewMemoryCache(10)
		now := time.Now()
		c.now = func() time.Time { return now }
		_ = c.Set(ctx, "k", []byte("v"), time.Minute)

		now = now.Add(2 * time.Minute)
		if _, ok, _ := c.Get(ctx, "k"); ok {
			t.Error("expected expired entry to miss")
		}
		if c.Len() != 0 {
			t.Errorf("expected expired entry to be removed, have %d", c.Len())
		}
	})

	t.Run("values are copied", func(t *testing.T) {
		c := NewMemoryCache(10)
		buf := []byte("abc")
		_ = c.Set(ctx, "k", buf, 0)
		buf[0] = 'x'
		got, _, _ := c.Get(ctx, "k")
		got[1] = 'y'
		again, _, _ := c.Get(ctx, "k")
		if string(again) != "abc" {
			t.Errorf("stored value was mutated: %q", again)
		}
	})

	t.Run("evicts the entry closest to expiry when full", func(t *testing.T) {
		c := NewMemoryCache(2)
		_ = c.Set(ctx, "short", []byte("1"), time.Minute)
		_ = c.Set(ctx, "forever", []byte("2"), 0)
		_ = c.Set(ctx, "new", []byte("3"), time.Hour)

		if c.Len() != 2 {
			t.Fatalf("expected 2 entries, have %d", c.Len())
		}
		if _, ok, _ := c.Get(ctx, "short"); ok {
			t.Error("expected short-lived entry to be evicted")
		}
		if _, ok, _ := c.Get(ctx, "forever"); !ok {
			t.Error("expected non-expiring entry to survive")
		}
	})
}

func TestRedisCacheUnreachable(t *testing.T) {
	c := NewRedisCache(RedisOptions{Addr: "127.0.0.1:1", Prefix: "test:"})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err == nil {
		t.Fatal("expected ping to fail")
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err == nil {
		t.Errorf("expected error on Get, got ok=%v err=%v", ok, err)
	}
}

var (
	_ PlanCache = (*MemoryCache)(nil)
	_ PlanCache = (*RedisCache)(nil)
)
