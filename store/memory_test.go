package store

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/scorekit/core"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Fatalf("missing key err = %v, want not found", err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("get = (%s, %v)", got, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Fatal("deleted key should be missing")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	// 1 秒 TTL 太慢，直接构造已过期的 entry
	s.Set(ctx, "k", []byte("v"), 1)
	s.mu.Lock()
	past := time.Now().Add(-time.Minute)
	s.data["k"].ttl = &past
	s.mu.Unlock()

	if _, err := s.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Fatal("expired key should be missing")
	}
}

func TestMemoryStoreBatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	kvs := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := s.BatchSet(ctx, kvs); err != nil {
		t.Fatal(err)
	}

	got, err := s.BatchGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Fatalf("batch get = %v", got)
	}
}

func TestMemoryStoreHashOps(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if _, err := s.HGet(ctx, "h", "f"); !core.IsStoreNotFound(err) {
		t.Fatal("missing hash field should be not found")
	}

	s.HSet(ctx, "h", "movies", []byte("[]"))
	s.HSet(ctx, "h", "music", []byte("[1]"))

	got, err := s.HGet(ctx, "h", "music")
	if err != nil || string(got) != "[1]" {
		t.Fatalf("hget = (%s, %v)", got, err)
	}

	all, err := s.HGetAll(ctx, "h")
	if err != nil || len(all) != 2 {
		t.Fatalf("hgetall = (%v, %v)", all, err)
	}

	// Delete 连带清掉 hash
	s.Delete(ctx, "h")
	empty, _ := s.HGetAll(ctx, "h")
	if len(empty) != 0 {
		t.Fatalf("hash should be gone, got %v", empty)
	}
}
